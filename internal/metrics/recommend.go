package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommendation and catalog metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_requests_total",
			Help:      "Total recommendation requests by outcome",
		},
		[]string{"status"}, // "ok" / "no_data"
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Time spent vectorizing and ranking one request",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
	)

	RecommendNoOverlapTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_no_overlap_total",
			Help:      "Requests whose query shared no terms with the catalog",
		},
	)

	CatalogDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_documents",
			Help:      "Documents in the active ranking index",
		},
	)

	CatalogVocabularyTerms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_vocabulary_terms",
			Help:      "Terms in the active ranking vocabulary",
		},
	)

	PostsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Post submissions by outcome",
		},
		[]string{"status"}, // "ok" / "invalid" / "error"
	)
)

// SetCatalog publishes the size of the index the server has installed.
// Pass zeros when no index is serving.
func SetCatalog(documents, terms int) {
	CatalogDocuments.Set(float64(documents))
	CatalogVocabularyTerms.Set(float64(terms))
}

var registerOnce sync.Once

// Register registers all collectors with the default registry. Call once from main.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			RecommendRequestsTotal,
			RecommendDuration,
			RecommendNoOverlapTotal,
			CatalogDocuments,
			CatalogVocabularyTerms,
			PostsCreatedTotal,
		)
	})
}
