package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/calclab/calc-engine/internal/board"
	"github.com/calclab/calc-engine/internal/config"
	"github.com/calclab/calc-engine/internal/lab"
	"github.com/calclab/calc-engine/internal/metrics"
	"github.com/calclab/calc-engine/internal/retention"
	"github.com/calclab/calc-engine/internal/store"
	"github.com/calclab/calc-engine/internal/throttle"
)

// idleClientTTL is how long an unused throttle bucket is kept.
const idleClientTTL = 30 * time.Minute

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Initialize store ---
	st, cleanup, err := openStore(ctx, cfg.Storage)
	if err != nil {
		slog.Error("store initialization failed", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	// --- Per-client throttle ---
	limiter := throttle.NewClientLimiter(cfg.Throttle.PerSecond, cfg.Throttle.Burst)

	// --- Retention ---
	sched := retention.NewScheduler(st, cfg.Retention.MaxAge)
	if err := sched.Register(cfg.Retention.Cron); err != nil {
		slog.Error("retention schedule rejected", "err", err)
		os.Exit(1)
	}
	if err := sched.AddFunc("@every 10m", "throttle sweep", func() {
		if n := limiter.Sweep(idleClientTTL); n > 0 {
			slog.Debug("throttle buckets swept", "removed", n)
		}
	}); err != nil {
		slog.Error("throttle sweep schedule rejected", "err", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// --- WebSocket hub ---
	wsHub := lab.NewWSHub()
	go wsHub.Run(ctx)

	// --- Services ---
	labSvc := lab.NewService(st, wsHub)
	boardSvc := board.NewService()

	// --- HTTP router ---
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(metrics.Middleware)

	// CORS middleware for frontend cross-origin requests.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+throttle.ClientHeader)
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"calc-engine"}`))
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket endpoint for live evaluations.
		r.Get("/ws", wsHub.HandleWS)

		// Calculator catalogue and evaluation.
		r.Get("/calculators", labSvc.ListCalculators)
		r.Get("/calculators/{kind}", labSvc.GetCalculator)
		r.With(limiter.Middleware).Post("/calculators/{kind}/evaluate", labSvc.EvaluateCalculator)

		// Calculation history.
		r.Get("/calculations", labSvc.ListCalculations)
		r.Get("/calculations/stats", labSvc.GetStats)
		r.Get("/calculations/{id}", labSvc.GetCalculation)

		// Dashboard pages.
		r.Get("/invoices", boardSvc.ListInvoices)
		r.Get("/transactions", boardSvc.ListTransactions)
		r.Get("/news", boardSvc.ListNews)
		r.Get("/dashboard", boardSvc.GetDashboard)
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("calc-engine listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down calc-engine...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
	fmt.Println("calc-engine stopped")
}

// openStore picks PostgreSQL (optionally behind Redis), SQLite or memory,
// in that order of preference.
func openStore(ctx context.Context, cfg config.StorageConfig) (store.Store, func(), error) {
	var cleanup []func()
	closeAll := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}

	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		cleanup = append(cleanup, pool.Close)

		pg := store.NewPostgresStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			closeAll()
			return nil, nil, err
		}
		slog.Info("connected to PostgreSQL")

		var st store.Store = pg
		if cfg.RedisURL != "" {
			opt, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
			}
			rdb := redis.NewClient(opt)
			cleanup = append(cleanup, func() { rdb.Close() })
			st = store.NewCachedStore(pg, rdb, cfg.CacheTTL)
			slog.Info("Redis cache enabled", "ttl", cfg.CacheTTL.String())
		}
		return st, closeAll, nil

	case cfg.SQLitePath != "":
		sq, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using SQLite store", "path", cfg.SQLitePath)
		return sq, func() { sq.Close() }, nil

	default:
		slog.Warn("no database configured, using in-memory store (data will not persist)")
		return store.NewMemoryStore(), func() {}, nil
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
