package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"hwstars/internal/auth"
	"hwstars/internal/errors"
	"hwstars/internal/model"
	"hwstars/internal/store"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Role     string
	Username string
	Password string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Resolve(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	store    store.Store
	issuer   *auth.SessionIssuer
	sessions auth.SessionCacheInterface
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(st store.Store, issuer *auth.SessionIssuer, sessions auth.SessionCacheInterface) AuthService {
	return &authService{
		store:    st,
		issuer:   issuer,
		sessions: sessions,
		now:      time.Now,
	}
}

// Register creates a user, its student profile when the role is student, and a first session.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role, ok := model.ParseRole(in.Role)
	if in.Name == "" || in.Username == "" || in.Password == "" || !ok {
		return nil, fmt.Errorf("%w: name, role, username and password are required", errors.ErrValidation)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", errors.ErrValidation, MinPasswordLength)
	}

	// Hash outside the store update.
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Role:         role,
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	session, err := s.issuer.Issue(user.ID, now)
	if err != nil {
		return nil, err
	}

	err = s.store.Update(ctx, func(doc *store.Document) error {
		if doc.UserByUsername(user.Username) != nil {
			return errors.ErrUsernameTaken
		}
		doc.Users = append(doc.Users, user)
		if role == model.RoleStudent {
			doc.EnsureProfile(user.ID, now)
		}
		doc.Sessions = append(doc.Sessions, session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: session.Token, User: user.Public()}, nil
}

// Login verifies credentials and issues a new session. Earlier sessions stay valid.
func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var user model.User
	err := s.store.View(ctx, func(doc *store.Document) error {
		u := doc.UserByUsername(username)
		if u == nil {
			return errors.ErrInvalidCredentials
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password for %s: %w", user.ID, err)
	}
	if !ok {
		return nil, errors.ErrInvalidCredentials
	}

	session, err := s.issuer.Issue(user.ID, s.now())
	if err != nil {
		return nil, err
	}
	err = s.store.Update(ctx, func(doc *store.Document) error {
		doc.Sessions = append(doc.Sessions, session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: session.Token, User: user.Public()}, nil
}

// Resolve returns the user owning token, or ErrUnauthenticated when the token
// is empty, unknown or expired.
func (s *authService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, errors.ErrUnauthenticated
	}
	now := s.now()
	if user, ok := s.sessions.LookupSession(ctx, token, now); ok {
		return user, nil
	}

	var (
		user    model.User
		session model.Session
	)
	err := s.store.View(ctx, func(doc *store.Document) error {
		sess := doc.ActiveSession(token, now)
		if sess == nil {
			return errors.ErrUnauthenticated
		}
		u := doc.UserByID(sess.UserID)
		if u == nil {
			return errors.ErrUnauthenticated
		}
		session, user = *sess, *u
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The cache is best effort; the store stays authoritative.
	_ = s.sessions.StoreSession(ctx, session, user, now)
	return &user, nil
}
