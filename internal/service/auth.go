package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/filedepot/filedepot-go/internal/crypto"
	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/repository"
)

// ErrUnauthorized covers every credential failure: absent user, wrong
// password, malformed header, unknown or expired token. Collapsing the
// causes into one error keeps the API from leaking why auth failed.
var ErrUnauthorized = errors.New("unauthorized")

// SessionStore is the token-to-user mapping the auth layer runs against.
type SessionStore interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// UserStore is the user persistence surface shared by the auth and users
// services.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// AuthService owns the session token lifecycle.
type AuthService struct {
	users    UserStore
	sessions SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login verifies email/password and issues an opaque session token valid
// for model.SessionTTL. Each successful login issues a distinct token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return "", ErrUnauthorized
	}

	token := crypto.NewSessionToken()
	if err := s.sessions.Put(ctx, token, user.ID.Hex(), model.SessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// LoginBasic authenticates from a Basic authorization header value.
func (s *AuthService) LoginBasic(ctx context.Context, authHeader string) (string, error) {
	email, password, ok := decodeBasicCredentials(authHeader)
	if !ok {
		return "", ErrUnauthorized
	}
	return s.Login(ctx, email, password)
}

// ResolveSession maps a token to its user id. The TTL is not refreshed.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	return userID, nil
}

// Logout resolves the token and deletes its session. An unknown token fails
// with ErrUnauthorized; the deletion itself is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.ResolveSession(ctx, token); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, token)
}

// decodeBasicCredentials extracts email and password from a Basic header
// value. Every malformed shape reports !ok; the caller maps that to the
// same outcome as wrong credentials.
func decodeBasicCredentials(header string) (email, password string, ok bool) {
	encoded, found := strings.CutPrefix(header, "Basic ")
	if !found || encoded == "" {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}

	email, password, found = strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}
