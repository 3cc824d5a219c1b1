package service

import (
	"context"

	"github.com/filedepot/filedepot-go/internal/model"
)

// Pinger reports liveness of a backing store.
type Pinger interface {
	Ping(ctx context.Context) bool
}

// StatsService answers the status and stats endpoints.
type StatsService struct {
	users UserStore
	files FileStore
	db    Pinger
	cache Pinger
}

// NewStatsService creates a new StatsService.
func NewStatsService(users UserStore, files FileStore, db, cache Pinger) *StatsService {
	return &StatsService{users: users, files: files, db: db, cache: cache}
}

// Status reports whether both backing stores answer.
func (s *StatsService) Status(ctx context.Context) model.StatusResponse {
	return model.StatusResponse{
		Redis: s.cache.Ping(ctx),
		DB:    s.db.Ping(ctx),
	}
}

// Stats reports document counts for the two collections.
func (s *StatsService) Stats(ctx context.Context) (model.StatsResponse, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return model.StatsResponse{}, err
	}
	files, err := s.files.Count(ctx)
	if err != nil {
		return model.StatsResponse{}, err
	}
	return model.StatsResponse{Users: users, Files: files}, nil
}
