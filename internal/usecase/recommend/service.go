package recommend

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/domain"
	"github.com/kailas-cloud/saunarec/internal/domain/preference"
	"github.com/kailas-cloud/saunarec/internal/domain/recommendation"
	logpkg "github.com/kailas-cloud/saunarec/internal/logger"
	"github.com/kailas-cloud/saunarec/internal/metrics"
	"github.com/kailas-cloud/saunarec/internal/ranking"
)

// indexRef boxes an Index so a nil interface can be told apart from "not set".
type indexRef struct {
	idx Index
}

// Service recommends catalog facilities for user preferences.
type Service struct {
	current atomic.Pointer[indexRef]
	topK    int
}

// New creates a Service. idx may be nil when the catalog failed to load;
// every Recommend call then returns ErrDataUnavailable.
func New(idx Index) *Service {
	s := &Service{topK: ranking.DefaultTopK}
	s.Swap(idx)
	return s
}

// WithTopK overrides the number of results per request.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Swap installs a fully built index. In-flight requests keep the index they started with.
// A nil index, including a nil pointer behind the interface, uninstalls it.
func (s *Service) Swap(idx Index) {
	if isNilIndex(idx) {
		s.current.Store(nil)
		return
	}
	s.current.Store(&indexRef{idx: idx})
}

func isNilIndex(idx Index) bool {
	if idx == nil {
		return true
	}
	v := reflect.ValueOf(idx)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// Ready reports whether an index is installed.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Recommend ranks the catalog against the joined preference answers and
// returns up to topK facilities, best first.
func (s *Service) Recommend(ctx context.Context, prefs preference.Preferences) ([]recommendation.Recommendation, error) {
	ref := s.current.Load()
	if ref == nil {
		metrics.RecommendRequestsTotal.WithLabelValues("no_data").Inc()
		return nil, fmt.Errorf("recommend: %w", domain.ErrDataUnavailable)
	}

	start := time.Now()
	hits := ref.idx.Search(prefs.Query(), s.topK)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()

	if len(hits) > 0 && hits[0].Score == 0 {
		metrics.RecommendNoOverlapTotal.Inc()
	}

	out := make([]recommendation.Recommendation, 0, len(hits))
	for _, h := range hits {
		d, ok := ref.idx.Document(h.ID)
		if !ok {
			return nil, fmt.Errorf("recommend: ranked id %d outside corpus", h.ID)
		}
		out = append(out, recommendation.FromDocument(d, h.Score))
	}

	logpkg.FromContext(ctx).Debug("Recommendation computed",
		zap.Bool("empty_query", prefs.Empty()),
		zap.Int("results", len(out)),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}
