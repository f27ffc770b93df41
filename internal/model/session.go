package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Session binds an opaque bearer token to a user until ExpiresAt.
// Sessions are never revoked; an expired session is simply ignored.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActiveAt reports whether the session is still valid at t.
func (s Session) ActiveAt(t time.Time) bool {
	return s.ExpiresAt.After(t)
}

// UnmarshalJSON also accepts timestamps written as epoch milliseconds, the
// format of data files created before sessions carried RFC 3339 times.
func (s *Session) UnmarshalJSON(data []byte) error {
	type plain Session
	var raw struct {
		plain
		ExpiresAt json.RawMessage `json:"expiresAt"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	expiresAt, err := decodeTimestamp(raw.ExpiresAt)
	if err != nil {
		return fmt.Errorf("session expiresAt: %w", err)
	}
	createdAt, err := decodeTimestamp(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("session createdAt: %w", err)
	}
	*s = Session(raw.plain)
	s.ExpiresAt = expiresAt
	s.CreatedAt = createdAt
	return nil
}

func decodeTimestamp(raw json.RawMessage) (time.Time, error) {
	var t time.Time
	if len(raw) == 0 || string(raw) == "null" {
		return t, nil
	}
	if raw[0] == '"' {
		err := json.Unmarshal(raw, &t)
		return t, err
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(raw), 64)
		if ferr != nil {
			return t, err
		}
		ms = int64(f)
	}
	return time.UnixMilli(ms).UTC(), nil
}
