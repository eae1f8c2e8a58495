// Package post persists board posts, newest first.
package post

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/domain"
	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
)

// FileStore keeps all posts in a single JSON array file.
// Writes are serialized; each write replaces the file atomically.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store backed by path. The file need not exist.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: filepath.Clean(path), logger: logger}
}

// List returns every post, newest first. A missing or corrupt file reads as empty.
func (s *FileStore) List(_ context.Context) ([]dompost.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Prepend stores p ahead of all existing posts.
func (s *FileStore) Prepend(_ context.Context, p dompost.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.read()
	if err != nil {
		return err
	}
	posts = append([]dompost.Post{p}, posts...)
	return s.write(posts)
}

// Ping checks that the directory holding the file is reachable.
func (s *FileStore) Ping(_ context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}

func (s *FileStore) read() ([]dompost.Post, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []dompost.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read posts: %w", domain.ErrStorage, err)
	}

	var posts []dompost.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		s.logger.Warn("Posts file is not valid JSON, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return []dompost.Post{}, nil
	}
	if posts == nil {
		posts = []dompost.Post{}
	}
	return posts, nil
}

func (s *FileStore) write(posts []dompost.Post) error {
	data, err := json.MarshalIndent(posts, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode posts: %w", domain.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", domain.ErrStorage, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write posts: %w", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %w", domain.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replace posts file: %w", domain.ErrStorage, err)
	}
	return nil
}
