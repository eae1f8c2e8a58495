package engine

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/saunarec/internal/domain"
	"github.com/kailas-cloud/saunarec/internal/domain/catalog"
)

func doc(id int, tip, refresh, sauna, water string) catalog.Document {
	return catalog.New(id, catalog.Attributes{
		Name:        "facility",
		BeginnerTip: tip,
		RefreshType: refresh,
		SaunaTemp:   sauna,
		WaterTemp:   water,
	})
}

func TestNew_EmptyCorpus(t *testing.T) {
	_, err := New(nil, nil)
	if !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestNew_StopwordOnlyCorpus(t *testing.T) {
	_, err := New([]catalog.Document{doc(0, "て", "に", "を", "は")}, []string{"て", "に", "を", "は"})
	if !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestNew_MisalignedIDs(t *testing.T) {
	_, err := New([]catalog.Document{doc(1, "a", "b", "c", "d")}, nil)
	if err == nil {
		t.Fatal("expected error for id/position mismatch")
	}
}

func TestSearch_MatchesRowsToDocuments(t *testing.T) {
	corpus := []catalog.Document{
		doc(0, "quiet", "relax", "mild", "warm"),
		doc(1, "lively", "energize", "hot", "icy"),
	}
	e, err := New(corpus, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if e.Size() != 2 {
		t.Errorf("Size() = %d", e.Size())
	}
	if e.VocabularySize() != 8 {
		t.Errorf("VocabularySize() = %d, want 8", e.VocabularySize())
	}

	hits := e.Search("energize hot icy", 5)
	if len(hits) != 2 || hits[0].ID != 1 {
		t.Fatalf("hits = %+v", hits)
	}
	d, ok := e.Document(hits[0].ID)
	if !ok || d.RefreshType() != "energize" {
		t.Errorf("Document(%d) = %+v", hits[0].ID, d)
	}
	if _, ok := e.Document(2); ok {
		t.Error("Document(2) should be out of range")
	}
	if _, ok := e.Document(-1); ok {
		t.Error("Document(-1) should be out of range")
	}
}

func TestNew_CopiesCorpus(t *testing.T) {
	corpus := []catalog.Document{doc(0, "a1", "b1", "c1", "d1")}
	e, err := New(corpus, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	corpus[0] = doc(0, "x", "y", "z", "w")

	d, _ := e.Document(0)
	if d.BeginnerTip() != "a1" {
		t.Error("engine shares the caller's corpus slice")
	}
}
