// Package session stores authenticated dashboard sessions in Redis and binds
// them to the browser through a signed cookie. The session holds the backend
// bearer token so the browser never sees it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
)

// ErrNotFound is returned when a session ID resolves to nothing, either
// because it expired or because it was invalidated.
var ErrNotFound = errors.New("session not found")

// Session is one authenticated dashboard session.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	User      backend.User `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Store persists sessions in Redis with a TTL.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore creates a session store. Sessions expire after ttl.
func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redisClient, ttl: ttl}
}

func (s *Store) key(id string) string {
	return "session:" + id
}

// Save writes the session and resets its TTL.
func (s *Store) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get loads a session by ID.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
