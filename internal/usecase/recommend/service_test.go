package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/saunarec/internal/domain"
	"github.com/kailas-cloud/saunarec/internal/domain/catalog"
	"github.com/kailas-cloud/saunarec/internal/domain/preference"
	"github.com/kailas-cloud/saunarec/internal/domain/recommendation"
	"github.com/kailas-cloud/saunarec/internal/engine"
	"github.com/kailas-cloud/saunarec/internal/metrics"
	"github.com/kailas-cloud/saunarec/internal/ranking"
	"github.com/kailas-cloud/saunarec/internal/tfidf"
)

// --- Fixtures ---

func facility(id int, name, price, tip, refresh, sauna, water string) catalog.Document {
	return catalog.New(id, catalog.Attributes{
		Name:        name,
		Location:    "loc-" + name,
		Price:       price,
		BeginnerTip: tip,
		RefreshType: refresh,
		SaunaTemp:   sauna,
		WaterTemp:   water,
	})
}

func sixFacilities() []catalog.Document {
	return []catalog.Document{
		facility(0, "alpha", "800円", "広い休憩所", "リラックス", "低温", "ぬるめ"),
		facility(1, "beta", "応相談", "駅近", "さっぱり", "中温", "普通"),
		facility(2, "gamma", "1,200円", "外気浴", "ととのう", "高温", "冷たい"),
		facility(3, "delta", "", "朝営業", "眠気覚まし", "スチーム", "常温"),
		facility(4, "epsilon", "500円", "薬草", "癒し", "ハーブ", "井戸水"),
		facility(5, "zeta", "2,000円", "貸切", "静寂", "ロウリュ", "天然"),
	}
}

func newService(t *testing.T, corpus []catalog.Document) *Service {
	t.Helper()
	e, err := engine.New(corpus, tfidf.DefaultStopwords)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return New(e)
}

func names(recs []recommendation.Recommendation) []string {
	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].Name()
	}
	return out
}

// --- Mocks ---

type stubIndex struct {
	hits []ranking.Hit
	docs []catalog.Document
}

func (s *stubIndex) Search(_ string, k int) []ranking.Hit {
	if k < len(s.hits) {
		return s.hits[:k]
	}
	return s.hits
}

func (s *stubIndex) Document(id int) (*catalog.Document, bool) {
	if id < 0 || id >= len(s.docs) {
		return nil, false
	}
	return &s.docs[id], true
}

func (s *stubIndex) Size() int           { return len(s.docs) }
func (s *stubIndex) VocabularySize() int { return 0 }

// --- Tests ---

func TestRecommend_ExactMatchRanksFirst(t *testing.T) {
	svc := newService(t, sixFacilities())

	recs, err := svc.Recommend(context.Background(), preference.Preferences{
		RefreshType: "ととのう", SaunaTemp: "高温", WaterTemp: "冷たい",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("len = %d, want 5", len(recs))
	}
	if recs[0].Name() != "gamma" {
		t.Fatalf("top = %q, want gamma", recs[0].Name())
	}
	if !(recs[0].Score() > recs[1].Score()) {
		t.Errorf("top score %f not strictly above runner-up %f", recs[0].Score(), recs[1].Score())
	}
}

func TestRecommend_ProjectsDisplayFields(t *testing.T) {
	svc := newService(t, sixFacilities())

	recs, err := svc.Recommend(context.Background(), preference.Preferences{RefreshType: "ととのう"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := recs[0]
	if top.Name() != "gamma" || top.Location() != "loc-gamma" || top.BeginnerTip() != "外気浴" {
		t.Errorf("unexpected projection: %+v", top)
	}
	if top.PriceText() != "1,200円" || top.Price() == nil || *top.Price() != 1200 {
		t.Errorf("price = %q / %v", top.PriceText(), top.Price())
	}
}

func TestRecommend_EmptyPreferencesReturnCorpusOrder(t *testing.T) {
	svc := newService(t, sixFacilities())

	recs, err := svc.Recommend(context.Background(), preference.Preferences{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	if got := names(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
	for _, r := range recs {
		if r.Score() != 0 {
			t.Errorf("%s scored %f on an empty query", r.Name(), r.Score())
		}
	}
}

func TestRecommend_NoOverlapDegradesGracefully(t *testing.T) {
	svc := newService(t, sixFacilities())

	recs, err := svc.Recommend(context.Background(), preference.Preferences{
		RefreshType: "zzz", SaunaTemp: "です", WaterTemp: "!!!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(recs); !reflect.DeepEqual(got, []string{"alpha", "beta", "gamma", "delta", "epsilon"}) {
		t.Errorf("names = %v", got)
	}
}

func TestRecommend_ResultCountIsMinOfKAndCorpus(t *testing.T) {
	all := sixFacilities()
	for n := 1; n <= len(all); n++ {
		t.Run(fmt.Sprintf("corpus=%d", n), func(t *testing.T) {
			svc := newService(t, all[:n])
			recs, err := svc.Recommend(context.Background(), preference.Preferences{SaunaTemp: "高温"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := n
			if want > 5 {
				want = 5
			}
			if len(recs) != want {
				t.Errorf("len = %d, want %d", len(recs), want)
			}
		})
	}
}

func TestRecommend_SortedWithStableTies(t *testing.T) {
	corpus := []catalog.Document{
		facility(0, "a", "", "x1", "common", "y1", "z1"),
		facility(1, "b", "", "x2", "other", "y2", "z2"),
		facility(2, "c", "", "x1", "common", "y1", "z1"),
		facility(3, "d", "", "x3", "common", "y3", "z3"),
	}
	svc := newService(t, corpus)

	recs, err := svc.Recommend(context.Background(), preference.Preferences{RefreshType: "common", SaunaTemp: "y1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score() > recs[i-1].Score() {
			t.Fatalf("not sorted at %d: %v", i, names(recs))
		}
	}
	// a and c are identical documents: equal score, corpus order kept.
	if got := names(recs)[:2]; !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("tie order = %v, want [a c]", got)
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	svc := newService(t, sixFacilities())
	prefs := preference.Preferences{RefreshType: "リラックス", WaterTemp: "ぬるめ"}

	first, err := svc.Recommend(context.Background(), prefs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Recommend(context.Background(), prefs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests produced different results")
	}
}

func TestRecommend_ConcurrentReaders(t *testing.T) {
	svc := newService(t, sixFacilities())
	want, _ := svc.Recommend(context.Background(), preference.Preferences{SaunaTemp: "高温"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Recommend(context.Background(), preference.Preferences{SaunaTemp: "高温"})
			if err != nil || !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent result differs: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestRecommend_NoData(t *testing.T) {
	svc := New(nil)

	if svc.Ready() {
		t.Error("service without index reports ready")
	}
	_, err := svc.Recommend(context.Background(), preference.Preferences{RefreshType: "ととのう"})
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestSwap_InstallsIndex(t *testing.T) {
	svc := New(nil)
	e, err := engine.New(sixFacilities(), nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	svc.Swap(e)
	if !svc.Ready() {
		t.Fatal("expected ready after Swap")
	}
	if _, err := svc.Recommend(context.Background(), preference.Preferences{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSwap_TypedNilUninstalls(t *testing.T) {
	svc := newService(t, sixFacilities())

	var eng *engine.Engine
	svc.Swap(eng)
	if svc.Ready() {
		t.Fatal("nil *Engine must not count as installed")
	}
	if _, err := svc.Recommend(context.Background(), preference.Preferences{}); !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}

	if New((*engine.Engine)(nil)).Ready() {
		t.Error("New with nil *Engine must not be ready")
	}
}

func TestSwap_LeavesCatalogGaugesToCaller(t *testing.T) {
	metrics.SetCatalog(42, 7)
	t.Cleanup(func() { metrics.SetCatalog(0, 0) })

	svc := New(nil)
	e, err := engine.New(sixFacilities(), nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	svc.Swap(e)
	svc.Swap(nil)

	if got := testutil.ToFloat64(metrics.CatalogDocuments); got != 42 {
		t.Errorf("documents gauge = %f, want 42", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogVocabularyTerms); got != 7 {
		t.Errorf("terms gauge = %f, want 7", got)
	}
}

func TestWithTopK(t *testing.T) {
	svc := newService(t, sixFacilities()).WithTopK(2)
	recs, _ := svc.Recommend(context.Background(), preference.Preferences{})
	if len(recs) != 2 {
		t.Errorf("len = %d, want 2", len(recs))
	}

	svc.WithTopK(0)
	recs, _ = svc.Recommend(context.Background(), preference.Preferences{})
	if len(recs) != 2 {
		t.Errorf("non-positive k must be ignored, got %d", len(recs))
	}
}

func TestRecommend_IndexReturnsUnknownID(t *testing.T) {
	svc := New(&stubIndex{hits: []ranking.Hit{{ID: 7, Score: 1}}})

	if _, err := svc.Recommend(context.Background(), preference.Preferences{}); err == nil {
		t.Fatal("expected error for out-of-corpus id")
	}
}
