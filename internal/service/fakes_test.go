package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/queue"
	"github.com/filedepot/filedepot-go/internal/repository"
)

// In-memory stands-ins for the Mongo and Redis adapters. They return the
// repository sentinel errors so the services' error translation is exercised
// for real.

type fakeUserStore struct {
	users map[string]*model.User // by hex id
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	s.users[u.ID.Hex()] = u
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id string) error {
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

type fakeSessionStore struct {
	sessions map[string]string // token → user id
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (s *fakeSessionStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.sessions[token] = userID
	return nil
}

func (s *fakeSessionStore) Get(ctx context.Context, token string) (string, error) {
	userID, ok := s.sessions[token]
	if !ok {
		return "", repository.ErrSessionNotFound
	}
	return userID, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

type fakeFileStore struct {
	files map[string]*model.File // by hex id
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string]*model.File)}
}

func (s *fakeFileStore) Create(ctx context.Context, f *model.File) error {
	f.ID = primitive.NewObjectID()
	stored := *f
	s.files[f.ID.Hex()] = &stored
	return nil
}

func (s *fakeFileStore) GetByID(ctx context.Context, id string) (*model.File, error) {
	f, ok := s.files[id]
	if !ok {
		return nil, repository.ErrFileNotFound
	}
	copied := *f
	return &copied, nil
}

func (s *fakeFileStore) GetOwned(ctx context.Context, id, userID string) (*model.File, error) {
	f, ok := s.files[id]
	if !ok || f.UserID.Hex() != userID {
		return nil, repository.ErrFileNotFound
	}
	copied := *f
	return &copied, nil
}

func (s *fakeFileStore) List(ctx context.Context, userID, parentID string, page int64) ([]model.File, error) {
	var out []model.File
	for _, f := range s.files {
		if f.UserID.Hex() == userID && f.ParentID == parentID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (s *fakeFileStore) SetPublic(ctx context.Context, id, userID string, public bool) (*model.File, error) {
	f, ok := s.files[id]
	if !ok || f.UserID.Hex() != userID {
		return nil, repository.ErrFileNotFound
	}
	f.IsPublic = public
	copied := *f
	return &copied, nil
}

func (s *fakeFileStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.files)), nil
}

type fakeJobs struct {
	thumbnails []queue.ThumbnailPayload
	welcomes   []queue.WelcomePayload
	err        error
}

func (j *fakeJobs) EnqueueThumbnail(ctx context.Context, p queue.ThumbnailPayload) error {
	if j.err != nil {
		return j.err
	}
	j.thumbnails = append(j.thumbnails, p)
	return nil
}

func (j *fakeJobs) EnqueueWelcomeEmail(ctx context.Context, p queue.WelcomePayload) error {
	if j.err != nil {
		return j.err
	}
	j.welcomes = append(j.welcomes, p)
	return nil
}
