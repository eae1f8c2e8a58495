package saunarec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/saunarec/internal/db/redis"
	domcat "github.com/kailas-cloud/saunarec/internal/domain/catalog"
	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
	"github.com/kailas-cloud/saunarec/internal/domain/preference"
	"github.com/kailas-cloud/saunarec/internal/domain/recommendation"
	"github.com/kailas-cloud/saunarec/internal/engine"
	"github.com/kailas-cloud/saunarec/internal/ranking"
	catalogrepo "github.com/kailas-cloud/saunarec/internal/repository/catalog"
	postrepo "github.com/kailas-cloud/saunarec/internal/repository/post"
	"github.com/kailas-cloud/saunarec/internal/tfidf"
	healthuc "github.com/kailas-cloud/saunarec/internal/usecase/health"
	postuc "github.com/kailas-cloud/saunarec/internal/usecase/post"
	recommenduc "github.com/kailas-cloud/saunarec/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultPostsKey         = "saunarec:posts"
	defaultTimeZone         = "Asia/Tokyo"
)

// Internal interfaces, swapped out in tests.
type recommendUseCase interface {
	Recommend(ctx context.Context, prefs preference.Preferences) ([]recommendation.Recommendation, error)
}

type postUseCase interface {
	List(ctx context.Context) ([]dompost.Post, error)
	Create(ctx context.Context, name, content string) (dompost.Post, error)
}

type postStore interface {
	postuc.Repository
	healthuc.StorePinger
}

// Client is the saunarec SDK entry point.
type Client struct {
	recommendSvc recommendUseCase
	postSvc      postUseCase // nil when the board is disabled
	healthSvc    healthUseCase
	size         int
	closer       func()
	obs          *observer
}

// New loads the catalog, builds the ranking index and, when configured,
// connects the post store. The context bounds the store readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{topK: ranking.DefaultTopK}
	for _, o := range opts {
		o.apply(cfg)
	}

	docs, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	stopwords := tfidf.DefaultStopwords
	if cfg.stopwordsSet {
		stopwords = cfg.stopwords
	}
	eng, err := engine.New(docs, stopwords)
	if err != nil {
		return nil, fmt.Errorf("saunarec: build index: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, closer, err := createPostStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recSvc := recommenduc.New(eng).WithTopK(cfg.topK)
	c := &Client{
		recommendSvc: recSvc,
		size:         eng.Size(),
		closer:       closer,
		obs:          obs,
	}

	// A nil store must stay a nil interface for the health check.
	var pinger healthuc.StorePinger
	if store != nil {
		loc, err := postLocation(cfg)
		if err != nil {
			closer()
			return nil, err
		}
		pinger = store
		c.postSvc = postuc.New(store, loc)
	}
	c.healthSvc = healthuc.New(recSvc, pinger)
	return c, nil
}

func loadCatalog(cfg *clientConfig) ([]domcat.Document, error) {
	switch {
	case cfg.facilities != nil:
		docs := make([]domcat.Document, 0, len(cfg.facilities))
		for _, f := range cfg.facilities {
			attrs := domcat.Attributes(f)
			if !attrs.Complete() {
				continue
			}
			docs = append(docs, domcat.New(len(docs), attrs))
		}
		return docs, nil
	case cfg.catalogPath != "":
		loader := catalogrepo.New(catalogrepo.Columns(cfg.columns), zap.NewNop()).WithSheet(cfg.sheet)
		res, err := loader.Load(cfg.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("saunarec: load catalog: %w", err)
		}
		return res.Documents, nil
	default:
		return nil, errors.New("saunarec: catalog required (use WithCatalogFile or WithFacilities)")
	}
}

func createPostStore(ctx context.Context, cfg *clientConfig) (postStore, func(), error) {
	switch cfg.postsDriver {
	case "":
		return nil, func() {}, nil
	case "file":
		if cfg.postsPath == "" {
			return nil, nil, errors.New("saunarec: posts file path required")
		}
		return postrepo.NewFileStore(cfg.postsPath, zap.NewNop()), func() {}, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("saunarec: create redis store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("saunarec: redis not ready: %w", err)
		}
		key := cfg.postsKey
		if key == "" {
			key = defaultPostsKey
		}
		return postrepo.NewRedisStore(s, key, zap.NewNop()), s.Close, nil
	default:
		return nil, nil, fmt.Errorf("saunarec: unknown posts driver %q", cfg.postsDriver)
	}
}

func postLocation(cfg *clientConfig) (*time.Location, error) {
	if cfg.location != nil {
		return cfg.location, nil
	}
	loc, err := time.LoadLocation(defaultTimeZone)
	if err != nil {
		return nil, fmt.Errorf("saunarec: load time zone: %w", err)
	}
	return loc, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// CatalogSize returns the number of indexed facilities.
func (c *Client) CatalogSize() int { return c.size }

// Recommend returns the facilities most similar to prefs, best first.
func (c *Client) Recommend(ctx context.Context, prefs Preferences) (_ []Recommendation, err error) {
	start := time.Now()
	var n int
	defer func() { c.obs.observe("recommend", start, err, "results", n) }()

	recs, err := c.recommendSvc.Recommend(ctx, preference.Preferences{
		RefreshType: prefs.RefreshType,
		SaunaTemp:   prefs.SaunaTemp,
		WaterTemp:   prefs.WaterTemp,
	})
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	out := make([]Recommendation, len(recs))
	for i := range recs {
		out[i] = toRecommendation(&recs[i])
	}
	n = len(out)
	return out, nil
}

// Posts returns the post board service.
func (c *Client) Posts() *PostService {
	return &PostService{svc: c.postSvc, obs: c.obs}
}

func toRecommendation(r *recommendation.Recommendation) Recommendation {
	return Recommendation{
		Name:        r.Name(),
		Location:    r.Location(),
		Price:       r.PriceText(),
		PriceValue:  r.Price(),
		BeginnerTip: r.BeginnerTip(),
		Score:       r.Score(),
	}
}
