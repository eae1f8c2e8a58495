package post

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/db"
	"github.com/kailas-cloud/saunarec/internal/domain"
	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
)

// listStore is the subset of db.Store the Redis post store needs.
type listStore interface {
	db.Pinger
	db.ListStore
}

// RedisStore keeps posts as JSON elements of a Redis list. LPUSH gives
// newest-first order without client-side locking.
type RedisStore struct {
	store  listStore
	key    string
	logger *zap.Logger
}

// NewRedisStore creates a store on the list at key.
func NewRedisStore(store listStore, key string, logger *zap.Logger) *RedisStore {
	return &RedisStore{store: store, key: key, logger: logger}
}

// List returns every post, newest first. Undecodable elements are skipped.
func (s *RedisStore) List(ctx context.Context) ([]dompost.Post, error) {
	raw, err := s.store.LRange(ctx, s.key, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: list posts: %w", domain.ErrStorage, err)
	}

	posts := make([]dompost.Post, 0, len(raw))
	for _, r := range raw {
		var p dompost.Post
		if err := json.Unmarshal(r, &p); err != nil {
			s.logger.Warn("Skipping undecodable post", zap.String("key", s.key), zap.Error(err))
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Prepend pushes p to the head of the list.
func (s *RedisStore) Prepend(ctx context.Context, p dompost.Post) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: encode post: %w", domain.ErrStorage, err)
	}
	if err := s.store.LPush(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: push post: %w", domain.ErrStorage, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}
