package repository

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix matches the historical key layout in the session store,
// so tokens issued by older deployments keep resolving.
const sessionKeyPrefix = "auth_"

var ErrSessionNotFound = errors.New("session not found")

// NewRedis creates a key-value store client for the given host and port.
func NewRedis(host, port string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort(host, port),
	})
}

// SessionStore maps opaque session tokens to user ids with a TTL.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Put stores token → userID, expiring after ttl. An existing token is
// overwritten with the new TTL.
func (s *SessionStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err()
}

// Get resolves a token to a user id. Absent and expired tokens look the same.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return v, nil
}

// Delete removes a token. Deleting an absent token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

// Ping reports whether the key-value store is reachable.
func (s *SessionStore) Ping(ctx context.Context) bool {
	return s.rdb.Ping(ctx).Err() == nil
}
