package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2Iterations is the iteration count for password key derivation.
	PBKDF2Iterations = 120000
	pbkdf2KeyLen     = 64
	saltLen          = 16
)

// ErrMalformedHash is returned when a stored password hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives a PBKDF2-SHA512 hash with a fresh random salt.
// The result is "<hex salt>:<hex hash>"; the hex salt string itself is the KDF salt.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)
	return salt + ":" + hex.EncodeToString(derive(password, salt)), nil
}

// VerifyPassword reports whether password matches the stored hash.
// The comparison is constant-time.
func VerifyPassword(password, stored string) (bool, error) {
	salt, hashHex, ok := strings.Cut(stored, ":")
	if !ok || salt == "" {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil || len(want) != pbkdf2KeyLen {
		return false, ErrMalformedHash
	}
	return subtle.ConstantTimeCompare(want, derive(password, salt)) == 1, nil
}

func derive(password, salt string) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), PBKDF2Iterations, pbkdf2KeyLen, sha512.New)
}
