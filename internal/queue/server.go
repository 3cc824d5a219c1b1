package queue

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Server pulls jobs from the named queues and dispatches each to its
// registered processor. A job is delivered to one worker slot at a time;
// concurrency across slots is a deployment choice.
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewServer creates a worker runtime backed by the Redis instance at addr.
func NewServer(addr string, concurrency int) *Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueThumbnails:    1,
				QueueWelcomeEmails: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				slog.Error("job failed", "task", task.Type(), "error", err)
			}),
		},
	)
	return &Server{srv: srv, mux: asynq.NewServeMux()}
}

// Handle attaches a processor to one task type. The handler receives the raw
// payload; returning nil acknowledges the job, returning an error requeues it
// unless the error is marked Fatal.
func (s *Server) Handle(taskType string, h func(ctx context.Context, payload []byte) error) {
	s.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		return h(ctx, t.Payload())
	})
}

// Run blocks, processing jobs until Shutdown is called.
func (s *Server) Run() error {
	return s.srv.Run(s.mux)
}

// Shutdown waits for in-flight jobs and stops the server.
func (s *Server) Shutdown() {
	s.srv.Shutdown()
}
