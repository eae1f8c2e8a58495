package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/domain"
	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
	logpkg "github.com/kailas-cloud/saunarec/internal/logger"
	"github.com/kailas-cloud/saunarec/internal/metrics"
)

// Field length caps, in characters.
const (
	MaxNameLength    = 100
	MaxContentLength = 2000
)

// Validation rules per field, derived from the caps above.
var (
	nameRule    = fmt.Sprintf("required,max=%d", MaxNameLength)
	contentRule = fmt.Sprintf("required,max=%d", MaxContentLength)
)

// Service manages the post board.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
	loc      *time.Location
}

// New creates a Service. Dates are stamped in loc (nil means local time).
func New(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		loc:      loc,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]dompost.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Create validates and stores a new post at the head of the board.
func (s *Service) Create(ctx context.Context, name, content string) (dompost.Post, error) {
	name, content = strings.TrimSpace(name), strings.TrimSpace(content)
	if err := s.check(name, content); err != nil {
		metrics.PostsCreatedTotal.WithLabelValues("invalid").Inc()
		return dompost.Post{}, err
	}

	p := dompost.New(uuid.NewString(), name, content, s.now().In(s.loc))
	if err := s.repo.Prepend(ctx, p); err != nil {
		metrics.PostsCreatedTotal.WithLabelValues("error").Inc()
		return dompost.Post{}, fmt.Errorf("save post: %w", err)
	}

	metrics.PostsCreatedTotal.WithLabelValues("ok").Inc()
	logpkg.FromContext(ctx).Info("Post created", zap.String("post_id", p.ID))
	return p, nil
}

// check validates fields in order and reports the first failure.
func (s *Service) check(name, content string) error {
	fields := []struct{ field, value, rule string }{
		{"name", name, nameRule},
		{"content", content, contentRule},
	}
	for _, f := range fields {
		if err := s.validate.Var(f.value, f.rule); err != nil {
			return fieldError(f.field, err)
		}
	}
	return nil
}

// fieldError converts a validation failure into a domain error.
func fieldError(field string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidPost, err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewFieldError(field, "is required")
	case "max":
		return domain.NewFieldError(field, "must be at most "+fe.Param()+" characters")
	default:
		return domain.NewFieldError(field, "is invalid")
	}
}
