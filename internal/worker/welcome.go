package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/filedepot/filedepot-go/internal/mailer"
	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/queue"
)

const (
	welcomeSubject = "Welcome to File Depot"
	welcomeBody    = `<h3>Hello,</h3>` +
		`<p>Welcome to File Depot, a simple file storage API. ` +
		`Your account is ready: upload files and folders, publish the ones ` +
		`you want to share, and we'll generate thumbnails for your images ` +
		`automatically.</p>` +
		`<p>We hope it meets your needs.</p>`
)

// UserStore is the lookup the welcome mailer needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// WelcomeProcessor consumes user-registration jobs and dispatches the
// welcome email.
type WelcomeProcessor struct {
	users  UserStore
	mailer mailer.Sender
}

// NewWelcomeProcessor creates a new WelcomeProcessor.
func NewWelcomeProcessor(users UserStore, sender mailer.Sender) *WelcomeProcessor {
	return &WelcomeProcessor{users: users, mailer: sender}
}

// Process handles one welcome-mail job. A payload without a user id is
// fatal; an absent user or a failed dispatch fails the job for retry.
func (p *WelcomeProcessor) Process(ctx context.Context, payload []byte) error {
	var job queue.WelcomePayload
	if err := json.Unmarshal(payload, &job); err != nil {
		return queue.Fatal(err)
	}
	if job.UserID == "" {
		return queue.Fatal(ErrMissingUserID)
	}

	user, err := p.users.GetByID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("loading user %s: %w", job.UserID, err)
	}

	if err := p.mailer.Send(ctx, user.Email, welcomeSubject, welcomeBody); err != nil {
		return fmt.Errorf("sending welcome email to %s: %w", user.Email, err)
	}

	slog.Info("welcome email sent", "email", user.Email)
	return nil
}
