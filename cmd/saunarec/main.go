package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/config"
	dbRedis "github.com/kailas-cloud/saunarec/internal/db/redis"
	"github.com/kailas-cloud/saunarec/internal/engine"
	logpkg "github.com/kailas-cloud/saunarec/internal/logger"
	"github.com/kailas-cloud/saunarec/internal/metrics"
	catalogrepo "github.com/kailas-cloud/saunarec/internal/repository/catalog"
	postrepo "github.com/kailas-cloud/saunarec/internal/repository/post"
	chiTransport "github.com/kailas-cloud/saunarec/internal/transport/chi"
	healthuc "github.com/kailas-cloud/saunarec/internal/usecase/health"
	postuc "github.com/kailas-cloud/saunarec/internal/usecase/post"
	recommenduc "github.com/kailas-cloud/saunarec/internal/usecase/recommend"
	"github.com/kailas-cloud/saunarec/internal/version"
)

// postStore is what the post board and its health check need from a store.
type postStore interface {
	postuc.Repository
	healthuc.StorePinger
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting saunarec API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog", cfg.Catalog.Path),
		zap.String("posts_driver", cfg.Posts.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	recommendSvc := recommenduc.New(nil).WithTopK(cfg.Recommend.TopK)
	if eng, err := buildEngine(cfg, logger); err != nil {
		metrics.SetCatalog(0, 0)
		logger.Error("Recommendations disabled", zap.Error(err))
	} else {
		recommendSvc.Swap(eng)
		metrics.SetCatalog(eng.Size(), eng.VocabularySize())
		logger.Info("Ranking index built",
			zap.Int("documents", eng.Size()),
			zap.Int("terms", eng.VocabularySize()),
		)
	}

	ctx := context.Background()
	store, closeStore, err := buildPostStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create post store", zap.Error(err))
	}
	defer closeStore()

	postSvc := postuc.New(store, cfg.Location())
	healthSvc := healthuc.New(recommendSvc, store)

	server := chiTransport.NewServer(recommendSvc, postSvc, healthSvc, logger)
	handler := server.Router(chiTransport.Options{
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		APIKeys:        cfg.Auth.APIKeys,
		PostRateLimit:  cfg.Posts.RateLimit,
		PostRateWindow: cfg.Posts.RateLimitWindow,
		StaticDir:      cfg.HTTP.StaticDir,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEngine loads the catalog and indexes it.
func buildEngine(cfg config.Config, logger *zap.Logger) (*engine.Engine, error) {
	cols := cfg.Catalog.Columns
	loader := catalogrepo.New(catalogrepo.Columns{
		Name:        cols.Name,
		Location:    cols.Location,
		Price:       cols.Price,
		BeginnerTip: cols.BeginnerTip,
		RefreshType: cols.RefreshType,
		SaunaTemp:   cols.SaunaTemp,
		WaterTemp:   cols.WaterTemp,
	}, logger).WithSheet(cfg.Catalog.Sheet)

	res, err := loader.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if res.Dropped > 0 {
		logger.Warn("Catalog rows with missing attributes dropped", zap.Int("dropped", res.Dropped))
	}
	eng, err := engine.New(res.Documents, cfg.Catalog.Stopwords)
	if err != nil {
		return nil, fmt.Errorf("index catalog: %w", err)
	}
	return eng, nil
}

// buildPostStore creates the configured post store and its cleanup func.
func buildPostStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (postStore, func(), error) {
	switch cfg.Posts.Driver {
	case "file":
		return postrepo.NewFileStore(cfg.Posts.Path, logger), func() {}, nil
	case "redis":
		rs, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Posts.Redis.Addrs,
			Password: cfg.Posts.Redis.Password,
			DB:       cfg.Posts.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		timeout := time.Duration(cfg.Posts.ReadinessTimeout) * time.Second
		if err := rs.WaitForReady(ctx, timeout); err != nil {
			rs.Close()
			return nil, nil, fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to post store", zap.Strings("addrs", cfg.Posts.Redis.Addrs))
		return postrepo.NewRedisStore(rs, cfg.Posts.Redis.Key, logger), rs.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown posts driver %q", cfg.Posts.Driver)
	}
}
