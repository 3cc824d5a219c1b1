package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/filedepot/filedepot-go/internal/crypto"
	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/queue"
	"github.com/filedepot/filedepot-go/internal/repository"
)

var (
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")
	ErrEmailTaken      = errors.New("email already taken")
	ErrUserNotFound    = errors.New("user not found")
)

// Jobs is the producer side of the background queue, shared by the users
// and files services.
type Jobs interface {
	EnqueueThumbnail(ctx context.Context, p queue.ThumbnailPayload) error
	EnqueueWelcomeEmail(ctx context.Context, p queue.WelcomePayload) error
}

// UsersService handles registration and account lookups.
type UsersService struct {
	users UserStore
	jobs  Jobs
}

// NewUsersService creates a new UsersService.
func NewUsersService(users UserStore, jobs Jobs) *UsersService {
	return &UsersService{users: users, jobs: jobs}
}

// Register creates a new account and enqueues the welcome email.
func (s *UsersService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if req.Email == "" {
		return model.UserResponse{}, ErrMissingEmail
	}
	if req.Password == "" {
		return model.UserResponse{}, ErrMissingPassword
	}

	// The unique index on email catches races; this lookup catches the
	// common case with a friendlier path.
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return model.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: crypto.HashPassword(req.Password),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	// The account is already persisted; an enqueue failure only loses the
	// welcome email.
	err := s.jobs.EnqueueWelcomeEmail(ctx, queue.WelcomePayload{UserID: user.ID.Hex()})
	if err != nil {
		slog.Warn("failed to enqueue welcome email", "user", user.ID.Hex(), "error", err)
	}

	return model.UserResponse{ID: user.ID.Hex(), Email: user.Email}, nil
}

// GetMe returns the account behind an authenticated session.
func (s *UsersService) GetMe(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return model.UserResponse{ID: user.ID.Hex(), Email: user.Email}, nil
}

// DeleteAccount removes the account.
func (s *UsersService) DeleteAccount(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}
