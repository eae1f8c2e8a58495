package post

import (
	"context"

	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
)

// Repository persists posts, newest first.
type Repository interface {
	List(ctx context.Context) ([]dompost.Post, error)
	Prepend(ctx context.Context, p dompost.Post) error
}
