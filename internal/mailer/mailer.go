// Package mailer isolates outbound mail delivery behind a narrow interface.
// The rest of the system treats sending as fire-and-forget with logged
// failure and never sees the provider's credential handling.
package mailer

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by Disabled for every send attempt.
var ErrNotConfigured = errors.New("mail delivery is not configured")

// Sender delivers a single HTML message.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Disabled is a Sender used when no mail provider is configured. Every send
// fails, so welcome-mail jobs retry and eventually park instead of being
// silently dropped.
type Disabled struct{}

func (Disabled) Send(ctx context.Context, to, subject, htmlBody string) error {
	return ErrNotConfigured
}
