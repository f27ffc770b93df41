package auth

import (
	"context"
	"encoding/json"
	"time"

	"hwstars/internal/cache"
	"hwstars/internal/model"
)

const (
	sessionKeyPrefix = "session:"
	// MaxSessionCacheTTL caps how long a resolved session stays cached.
	MaxSessionCacheTTL = 5 * time.Minute
)

// SessionCacheInterface defines the interface for caching resolved sessions.
type SessionCacheInterface interface {
	StoreSession(ctx context.Context, session model.Session, user model.User, now time.Time) error
	LookupSession(ctx context.Context, token string, now time.Time) (*model.User, bool)
}

// SessionCache keeps token -> user resolutions in Redis so authenticated
// requests can skip reading the document. Users and sessions are immutable,
// so entries never need invalidation; they only have to expire in time.
type SessionCache struct {
	cache *cache.Client
}

// Ensure SessionCache implements SessionCacheInterface
var _ SessionCacheInterface = (*SessionCache)(nil)

// NewSessionCache creates a new session cache. A nil client disables it.
func NewSessionCache(cache *cache.Client) *SessionCache {
	return &SessionCache{cache: cache}
}

type cachedSession struct {
	User      model.User `json:"user"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// StoreSession caches the resolution until the session expires or MaxSessionCacheTTL passes.
func (s *SessionCache) StoreSession(ctx context.Context, session model.Session, user model.User, now time.Time) error {
	ttl := session.ExpiresAt.Sub(now)
	if ttl > MaxSessionCacheTTL {
		ttl = MaxSessionCacheTTL
	}
	if ttl <= 0 {
		return nil
	}
	user.PasswordHash = ""
	payload, err := json.Marshal(cachedSession{User: user, ExpiresAt: session.ExpiresAt})
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl)
}

// LookupSession returns the cached user for token if the session is still active at now.
func (s *SessionCache) LookupSession(ctx context.Context, token string, now time.Time) (*model.User, bool) {
	data, _ := s.cache.Get(ctx, sessionKeyPrefix+token)
	if data == nil {
		return nil, false
	}
	var cached cachedSession
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	if !cached.ExpiresAt.After(now) {
		return nil, false
	}
	return &cached.User, true
}
