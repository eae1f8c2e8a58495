package saunarec

import (
	"context"
	"fmt"
	"time"

	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
)

// PostService manages the post board.
type PostService struct {
	svc postUseCase
	obs *observer
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) (_ []Post, err error) {
	start := time.Now()
	defer func() { s.obs.observe("post.list", start, err) }()

	if s.svc == nil {
		return nil, ErrPostsDisabled
	}
	posts, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = toPost(p)
	}
	return out, nil
}

// Create validates and stores a post. Blank name or content is ErrInvalidPost.
func (s *PostService) Create(ctx context.Context, name, content string) (_ Post, err error) {
	start := time.Now()
	defer func() { s.obs.observe("post.create", start, err) }()

	if s.svc == nil {
		return Post{}, ErrPostsDisabled
	}
	p, err := s.svc.Create(ctx, name, content)
	if err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	return toPost(p), nil
}

func toPost(p dompost.Post) Post {
	return Post{
		ID:        p.ID,
		Name:      p.Name,
		Content:   p.Content,
		Date:      p.Date,
		CreatedAt: p.CreatedAt,
	}
}
