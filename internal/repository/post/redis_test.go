package post

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/domain"
)

// --- Mocks ---

type mockListStore struct {
	lists   map[string][][]byte
	pushErr error
	listErr error
	pingErr error
}

func newMockListStore() *mockListStore {
	return &mockListStore{lists: map[string][][]byte{}}
}

func (m *mockListStore) Ping(_ context.Context) error { return m.pingErr }

func (m *mockListStore) LPush(_ context.Context, key string, values ...[]byte) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	for _, v := range values {
		m.lists[key] = append([][]byte{v}, m.lists[key]...)
	}
	return nil
}

func (m *mockListStore) LRange(_ context.Context, key string, _, _ int64) ([][]byte, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.lists[key], nil
}

// --- Tests ---

func TestRedisStore_PrependAndList(t *testing.T) {
	ms := newMockListStore()
	s := NewRedisStore(ms, "saunarec:posts", zap.NewNop())
	ctx := context.Background()

	for _, id := range []string{"1", "2"} {
		if err := s.Prepend(ctx, newPost(id)); err != nil {
			t.Fatalf("Prepend: %v", err)
		}
	}

	posts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != "2" || posts[1].ID != "1" {
		t.Errorf("posts = %+v", posts)
	}

	var decoded map[string]any
	if err := json.Unmarshal(ms.lists["saunarec:posts"][0], &decoded); err != nil {
		t.Fatalf("stored element is not JSON: %v", err)
	}
	if decoded["name"] != "name-2" {
		t.Errorf("stored name = %v", decoded["name"])
	}
}

func TestRedisStore_SkipsUndecodable(t *testing.T) {
	ms := newMockListStore()
	ms.lists["k"] = [][]byte{[]byte("garbage")}
	s := NewRedisStore(ms, "k", zap.NewNop())

	if err := s.Prepend(context.Background(), newPost("ok")); err != nil {
		t.Fatalf("Prepend: %v", err)
	}
	posts, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "ok" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestRedisStore_Errors(t *testing.T) {
	ms := newMockListStore()
	ms.pushErr = errors.New("push failed")
	ms.listErr = errors.New("list failed")
	ms.pingErr = errors.New("down")
	s := NewRedisStore(ms, "k", zap.NewNop())
	ctx := context.Background()

	if err := s.Prepend(ctx, newPost("1")); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("Prepend: expected ErrStorage, got %v", err)
	}
	if _, err := s.List(ctx); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("List: expected ErrStorage, got %v", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("Ping: expected ErrStorage, got %v", err)
	}
}
