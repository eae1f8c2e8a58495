package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/saunarec/internal/domain"
	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
)

// --- Mocks ---

type mockRepo struct {
	posts   []dompost.Post
	listErr error
	saveErr error
}

func (m *mockRepo) List(_ context.Context) ([]dompost.Post, error) {
	return m.posts, m.listErr
}

func (m *mockRepo) Prepend(_ context.Context, p dompost.Post) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.posts = append([]dompost.Post{p}, m.posts...)
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 18, 21, 5, 0, 0, time.UTC)
}

// --- Tests ---

func TestCreate_StampsAndPrepends(t *testing.T) {
	repo := &mockRepo{}
	jst := time.FixedZone("JST", 9*60*60)
	svc := New(repo, jst).WithClock(fixedClock)

	first, err := svc.Create(context.Background(), "  太郎 ", "最高")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(first.ID); err != nil {
		t.Errorf("ID %q is not a UUID", first.ID)
	}
	if first.Name != "太郎" {
		t.Errorf("Name = %q, want trimmed", first.Name)
	}
	if first.Date != "2026/10/19 06:05" {
		t.Errorf("Date = %q, want JST stamp", first.Date)
	}

	second, err := svc.Create(context.Background(), "花子", "また行きたい")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != second.ID || posts[1].ID != first.ID {
		t.Errorf("posts not newest first: %+v", posts)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name, postName, content, field string
	}{
		{"missing name", "", "content", "name"},
		{"blank name", "   ", "content", "name"},
		{"missing content", "name", "", "content"},
		{"name too long", strings.Repeat("a", MaxNameLength+1), "content", "name"},
		{"content too long", "name", strings.Repeat("あ", MaxContentLength+1), "content"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := New(repo, time.UTC)

			_, err := svc.Create(context.Background(), tc.postName, tc.content)
			if !errors.Is(err, domain.ErrInvalidPost) {
				t.Fatalf("expected ErrInvalidPost, got %v", err)
			}
			var fe *domain.FieldError
			if !errors.As(err, &fe) || fe.Field != tc.field {
				t.Errorf("expected field %q, got %v", tc.field, err)
			}
			if len(repo.posts) != 0 {
				t.Error("invalid post was stored")
			}
		})
	}
}

func TestCreate_LengthCapsAtBoundary(t *testing.T) {
	tests := []struct {
		name, postName, content, wantField, wantReason string
	}{
		{"name at cap", strings.Repeat("名", MaxNameLength), "content", "", ""},
		{"content at cap", "name", strings.Repeat("あ", MaxContentLength), "", ""},
		{"name over cap", strings.Repeat("名", MaxNameLength+1), "content", "name",
			fmt.Sprintf("must be at most %d characters", MaxNameLength)},
		{"content over cap", "name", strings.Repeat("あ", MaxContentLength+1), "content",
			fmt.Sprintf("must be at most %d characters", MaxContentLength)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := New(repo, time.UTC)

			_, err := svc.Create(context.Background(), tc.postName, tc.content)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(repo.posts) != 1 {
					t.Errorf("stored %d posts, want 1", len(repo.posts))
				}
				return
			}
			var fe *domain.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fe.Field != tc.wantField || fe.Reason != tc.wantReason {
				t.Errorf("got %s %q, want %s %q", fe.Field, fe.Reason, tc.wantField, tc.wantReason)
			}
		})
	}
}

func TestCreate_StorageError(t *testing.T) {
	repo := &mockRepo{saveErr: domain.ErrStorage}
	svc := New(repo, nil)

	_, err := svc.Create(context.Background(), "name", "content")
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestList_Error(t *testing.T) {
	svc := New(&mockRepo{listErr: errors.New("boom")}, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
