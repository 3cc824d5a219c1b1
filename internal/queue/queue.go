// Package queue provides named, durable background job queues with
// at-least-once delivery. Producers enqueue typed payloads; workers attach
// one processor per task kind. Failed jobs are retried a bounded number of
// times and then archived for manual inspection.
package queue

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// Queue names. Each job kind lives on its own queue; there is no ordering
// guarantee across queues or across jobs within one queue.
const (
	QueueThumbnails    = "thumbnails"
	QueueWelcomeEmails = "welcome_emails"
)

// Task type names routed to processors.
const (
	TaskThumbnailGenerate = "thumbnail:generate"
	TaskWelcomeEmail      = "email:welcome"
)

// maxRetry bounds how often a failed job is redelivered before it is
// archived.
const maxRetry = 5

// ThumbnailPayload identifies the uploaded image a worker should downsize.
type ThumbnailPayload struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

// WelcomePayload identifies a freshly registered user to greet.
type WelcomePayload struct {
	UserID string `json:"userId"`
}

// Fatal marks err as non-retryable: the job goes straight to the archived
// state instead of burning through its retry budget.
func Fatal(err error) error {
	return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
}
