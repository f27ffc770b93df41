package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"hwstars/internal/model"
)

const (
	// DefaultSessionTTL is how long a session token stays valid.
	DefaultSessionTTL = 24 * time.Hour
	tokenBytes        = 32
)

// SessionIssuer mints opaque session tokens with an absolute expiry.
type SessionIssuer struct {
	ttl time.Duration
}

// NewSessionIssuer creates an issuer; a non-positive ttl falls back to DefaultSessionTTL.
func NewSessionIssuer(ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionIssuer{ttl: ttl}
}

// TTL returns the lifetime of issued sessions.
func (s *SessionIssuer) TTL() time.Duration { return s.ttl }

// Issue creates a session for userID starting at now.
func (s *SessionIssuer) Issue(userID string, now time.Time) (model.Session, error) {
	token, err := generateToken()
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}, nil
}

// generateToken returns 32 random bytes as 64 hex characters.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
