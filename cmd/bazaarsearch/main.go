package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/catalog"
	"github.com/bazaar-labs/bazaarsearch/internal/config"
	"github.com/bazaar-labs/bazaarsearch/internal/db"
	dbRedis "github.com/bazaar-labs/bazaarsearch/internal/db/redis"
	"github.com/bazaar-labs/bazaarsearch/internal/domain"
	"github.com/bazaar-labs/bazaarsearch/internal/index"
	logpkg "github.com/bazaar-labs/bazaarsearch/internal/logger"
	"github.com/bazaar-labs/bazaarsearch/internal/metrics"
	"github.com/bazaar-labs/bazaarsearch/internal/repository/embcache"
	chiTransport "github.com/bazaar-labs/bazaarsearch/internal/transport/chi"
	openaiTransport "github.com/bazaar-labs/bazaarsearch/internal/transport/openai"
	healthuc "github.com/bazaar-labs/bazaarsearch/internal/usecase/health"
	planuc "github.com/bazaar-labs/bazaarsearch/internal/usecase/plan"
	searchuc "github.com/bazaar-labs/bazaarsearch/internal/usecase/search"
	"github.com/bazaar-labs/bazaarsearch/internal/version"
)

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

	logger.Info("Starting bazaarsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Artifacts.CatalogPath),
		zap.String("vectors_path", cfg.Artifacts.VectorsPath),
	)

	// Load the row-aligned catalog and vector artifacts. Both are immutable
	// after this point, so request handling reads them without locking.
	cat, err := catalog.Load(cfg.Artifacts.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	flat, err := index.Load(cfg.Artifacts.VectorsPath)
	if err != nil {
		logger.Fatal("Failed to load vector index", zap.Error(err))
	}
	if cat.Len() != flat.Len() {
		logger.Fatal("Catalog and index artifacts are misaligned",
			zap.Int("catalog_rows", cat.Len()),
			zap.Int("index_rows", flat.Len()),
		)
	}
	logger.Info("Artifacts loaded",
		zap.Int("rows", cat.Len()),
		zap.Int("dimensions", flat.Dimension()),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterExtractionMetrics()

	// Optional Redis embedding cache
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder := buildEmbedder(cfg, store, logger)
	extractor := openaiTransport.NewExtractor(&openaiTransport.ExtractorConfig{
		APIKey:  cfg.Extractor.APIKey,
		BaseURL: cfg.Extractor.BaseURL,
		Model:   cfg.Extractor.Model,
		Logger:  logger,
	})
	logger.Info("Providers created",
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.String("extractor_model", cfg.Extractor.Model),
	)

	// Create use case services
	planner := planuc.New(extractor, logger).
		WithPolicy(planuc.FailurePolicy(cfg.Planner.OnFailure)).
		WithTimeout(time.Duration(cfg.Extractor.TimeoutSec) * time.Second).
		WithMaxTasks(cfg.Planner.MaxTasks)
	searchSvc := searchuc.New(planner, embedder, flat, cat).
		WithLimits(cfg.Search.ResultLimit, cfg.Search.CandidateK)

	var cachePinger healthuc.Pinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(
		newProviderHealthChecker(embedder),
		extractor,
		cachePinger,
	)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// buildEmbedder assembles the embedder chain: OpenAI -> Cached (when a cache
// store is configured).
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) domain.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	if store != nil {
		return embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}
	return base
}

// providerHealthChecker exposes an embedder's optional health check.
type providerHealthChecker struct {
	embedder domain.Embedder
}

func newProviderHealthChecker(embedder domain.Embedder) *providerHealthChecker {
	return &providerHealthChecker{embedder: embedder}
}

func (h *providerHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
