package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"unibus/internal/platform/config"
	"unibus/internal/platform/database"
	"unibus/internal/platform/health"
	"unibus/internal/platform/httpserver"
	"unibus/internal/platform/kafka/producer"
	"unibus/internal/platform/logger"
	"unibus/internal/platform/redis"
	httptransport "unibus/internal/transport/http"
	"unibus/pkg/platform/middleware/request"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing unibus",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"audit_sink", cfg.Audit.Sink,
	)

	backing, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backing.close(cfg.Server.ShutdownTimeout, log)

	auditStore, err := buildAuditStore(cfg, backing)
	if err != nil {
		return err
	}
	defer auditStore.close()

	app := buildApp(cfg, log, backing, auditStore.store)
	defer app.publisher.Close()

	healthHandler := health.New(cfg.Server.Environment)
	registerHealthChecks(healthHandler, backing)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		RequestTimeout: cfg.Server.RequestTimeout,
		Latency:        request.NewMetrics(),
		Metrics:        promhttp.Handler(),
		Health:         healthHandler,
		Resources:      app.resources,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	if backing.redis != nil {
		g.Go(func() error {
			recordRedisPoolStats(gctx, backing.redis)
			return nil
		})
	}
	return g.Wait()
}

// infra holds the optional backing services. Each field is nil when its
// URL is not configured.
type infra struct {
	db       *database.Pool
	redis    *redis.Client
	producer *producer.Producer
}

func openInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	in := &infra{}

	db, err := database.New(ctx, database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	in.db = db
	if db == nil {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	rc, err := redis.New(ctx, cfg.Redis, redis.NewPoolMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		in.close(cfg.Server.ShutdownTimeout, log)
		return nil, err
	}
	in.redis = rc
	if rc == nil {
		log.Info("REDIS_URL not set, caching postal lookups in memory")
	}

	if cfg.Kafka.Brokers != "" {
		p, err := producer.New(producer.DefaultConfig(cfg.Kafka.Brokers), log)
		if err != nil {
			in.close(cfg.Server.ShutdownTimeout, log)
			return nil, err
		}
		in.producer = p
	}
	return in, nil
}

func (in *infra) close(timeout time.Duration, log *slog.Logger) {
	if in.producer != nil {
		in.producer.Close(timeout)
	}
	if in.redis != nil {
		if err := in.redis.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}
	if err := in.db.Close(); err != nil {
		log.Warn("failed to close database pool", "error", err)
	}
}

func registerHealthChecks(h *health.Handler, in *infra) {
	if in.db != nil {
		h.RegisterCheck("database", in.db.Health)
	}
	if in.redis != nil {
		h.RegisterCheck("redis", in.redis.Health)
	}
	if in.producer != nil {
		h.RegisterCheck("kafka", in.producer.Ping)
	}
}

func recordRedisPoolStats(ctx context.Context, c *redis.Client) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RecordPoolStats()
		}
	}
}
