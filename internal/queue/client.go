package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Client enqueues background jobs. Enqueue returns once the job is durably
// recorded in the queue backend, not when it runs; the producing request
// never observes the job's outcome.
type Client struct {
	c *asynq.Client
}

// NewClient creates a queue producer backed by the Redis instance at addr.
func NewClient(addr string) *Client {
	return &Client{c: asynq.NewClient(asynq.RedisClientOpt{Addr: addr})}
}

// Close releases the client's connections.
func (c *Client) Close() error {
	return c.c.Close()
}

// EnqueueThumbnail records one thumbnail job for an uploaded image.
func (c *Client) EnqueueThumbnail(ctx context.Context, p ThumbnailPayload) error {
	return c.enqueue(ctx, TaskThumbnailGenerate, QueueThumbnails, p)
}

// EnqueueWelcomeEmail records one welcome-mail job for a new user.
func (c *Client) EnqueueWelcomeEmail(ctx context.Context, p WelcomePayload) error {
	return c.enqueue(ctx, TaskWelcomeEmail, QueueWelcomeEmails, p)
}

func (c *Client) enqueue(ctx context.Context, taskType, queueName string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(taskType, b)
	_, err = c.c.EnqueueContext(ctx, task, asynq.Queue(queueName), asynq.MaxRetry(maxRetry))
	return err
}
