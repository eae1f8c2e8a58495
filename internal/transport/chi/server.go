package chi

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/domain"
	"github.com/kailas-cloud/saunarec/internal/domain/preference"
	"github.com/kailas-cloud/saunarec/internal/metrics"
	healthuc "github.com/kailas-cloud/saunarec/internal/usecase/health"
	postuc "github.com/kailas-cloud/saunarec/internal/usecase/post"
	recommenduc "github.com/kailas-cloud/saunarec/internal/usecase/recommend"
	"github.com/kailas-cloud/saunarec/internal/version"
)

// maxBodyBytes caps request bodies; posts are the largest legitimate payload.
const maxBodyBytes = 64 << 10

// postCreatedMessage is shown by the front page after a successful post.
const postCreatedMessage = "投稿しました！"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options configures router-level behavior.
type Options struct {
	CORSOrigins    []string
	APIKeys        []string
	PostRateLimit  int // per IP per window, 0 disables
	PostRateWindow time.Duration
	StaticDir      string
}

// Server serves the recommendation and post board HTTP API.
type Server struct {
	recommend     *recommenduc.Service
	posts         *postuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	posts *postuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		posts:     posts,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		noDataHandler,
		fieldErrorHandler,
		sentinelHandler(domain.ErrInvalidPost, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrStorage, http.StatusInternalServerError, codeStorageError),
	}
	return s
}

// Router builds the full handler with middleware.
func (s *Server) Router(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware())

	r.Post("/recommend", s.Recommend)
	r.Get("/posts", s.ListPosts)
	r.With(
		BearerAuthMiddleware(opts.APIKeys),
		s.postRateLimit(opts.PostRateLimit, opts.PostRateWindow),
	).Post("/posts", s.CreatePost)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	if opts.StaticDir != "" {
		index := filepath.Join(opts.StaticDir, "index.html")
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		})
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})
	return r
}

// Recommend handles POST /recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	prefs, err := decodePreferences(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	recs, err := s.recommend.Recommend(r.Context(), prefs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recommendationResponse, len(recs))
	for i := range recs {
		items[i] = recommendationToResponse(&recs[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// ListPosts handles GET /posts.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreatePost handles POST /posts.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Request body is required")
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.posts.Create(r.Context(), req.Name, req.Content)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createPostResponse{Message: postCreatedMessage, Post: p})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Report: report, Version: version.Version})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// postRateLimit limits post submissions per client IP.
func (s *Server) postRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, codeRateLimited, "too many posts, try again later")
		}),
	)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// decodePreferences reads the preference answers. An empty body means no
// answers. Answers that are not strings are ignored rather than rejected.
func decodePreferences(body io.Reader) (preference.Preferences, error) {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return preference.Preferences{}, nil
		}
		return preference.Preferences{}, err
	}

	str := func(key string) string {
		v, _ := raw[key].(string)
		return v
	}
	return preference.Preferences{
		RefreshType: str("refresh_type"),
		SaunaTemp:   str("sauna_temp"),
		WaterTemp:   str("water_temp"),
	}, nil
}
