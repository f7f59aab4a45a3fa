package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	v1 "github.com/cinedex/cinedex/internal/api/v1"
	"github.com/cinedex/cinedex/internal/cache"
	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/config"
	"github.com/cinedex/cinedex/internal/index"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// === Index client ===
	var opts []index.Option
	if cfg.Index.Username != "" {
		opts = append(opts, index.WithBasicAuth(cfg.Index.Username, cfg.Index.Password))
	}
	idx, err := index.NewElastic(cfg.Index.Addresses, logger.With("component", "index"), opts...)
	if err != nil {
		return fmt.Errorf("index client: %w", err)
	}

	// === Cache store ===
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	summaries := cache.NewAccessor[catalog.FilmSummary](store, "film", ttl, logger.With("component", "cache"))

	// === Services ===
	genres := catalog.NewGenreResolver(idx, cfg.Indexes.Genres, logger.With("component", "genres"))
	credits := catalog.NewCreditAggregator(idx, cfg.Indexes.Films, logger.With("component", "credits"))
	films := catalog.NewFilmService(idx, cfg.Indexes.Films, genres, summaries, logger.With("component", "films"))
	persons := catalog.NewPersonService(idx, cfg.Indexes.Persons, credits, logger.With("component", "persons"))

	// === HTTP Setup ===
	mux := http.NewServeMux()
	api := v1.New(films, persons, logger.With("component", "api"))
	api.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"index_addresses", strings.Join(cfg.Index.Addresses, ","),
		"cache_backend", cfg.Cache.Backend,
		"cache_ttl", ttl.String(),
		"log_level", cfg.Server.LogLevel,
	)

	// === HTTP Server ===
	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// openStore builds the cache store selected by the config. A "none"
// backend still returns a working store so services never check for nil.
func openStore(cfg *config.Config, logger *slog.Logger) (cache.Store, error) {
	log := logger.With("component", "cache")
	switch cfg.Cache.Backend {
	case "redis":
		r := cache.NewRedis(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, log)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			// Degrade to serving uncached rather than refusing to start.
			log.Warn("redis unreachable, continuing without it", "addr", cfg.Cache.Redis.Addr, "error", err)
		}
		return r, nil
	case "sqlite":
		dir := filepath.Dir(cfg.Cache.SQLite.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		s, err := cache.OpenSQLite(cfg.Cache.SQLite.Path, log)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return s, nil
	default:
		return cache.Noop{}, nil
	}
}
