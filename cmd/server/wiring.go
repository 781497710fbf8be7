package main

import (
	"fmt"
	"log/slog"

	"unibus/internal/enrichment"
	"unibus/internal/enrichment/cache"
	"unibus/internal/enrichment/clients/adapter"
	"unibus/internal/enrichment/clients/eligibility"
	"unibus/internal/enrichment/clients/geo"
	"unibus/internal/enrichment/clients/postal"
	enrichmentmetrics "unibus/internal/enrichment/metrics"
	"unibus/internal/enrichment/ports"
	"unibus/internal/enrichment/tracer"
	"unibus/internal/platform/config"
	"unibus/internal/platform/metrics"
	routehandler "unibus/internal/route/handler"
	routeservice "unibus/internal/route/service"
	routestore "unibus/internal/route/store"
	studenthandler "unibus/internal/student/handler"
	studentservice "unibus/internal/student/service"
	studentstore "unibus/internal/student/store"
	httptransport "unibus/internal/transport/http"
	triphandler "unibus/internal/trip/handler"
	tripservice "unibus/internal/trip/service"
	tripstore "unibus/internal/trip/store"
	"unibus/pkg/platform/audit"
	auditmetrics "unibus/pkg/platform/audit/metrics"
	"unibus/pkg/platform/audit/publisher"
	auditfile "unibus/pkg/platform/audit/store/file"
	auditkafka "unibus/pkg/platform/audit/store/kafka"
	auditmemory "unibus/pkg/platform/audit/store/memory"
	auditpostgres "unibus/pkg/platform/audit/store/postgres"
)

type auditBackend struct {
	store audit.Store
	close func()
}

func buildAuditStore(cfg config.Config, in *infra) (auditBackend, error) {
	noop := func() {}
	switch cfg.Audit.Sink {
	case config.AuditSinkPostgres:
		if in.db == nil {
			return auditBackend{}, fmt.Errorf("postgres audit sink requires a database")
		}
		return auditBackend{store: auditpostgres.New(in.db.DB()), close: noop}, nil
	case config.AuditSinkKafka:
		if in.producer == nil {
			return auditBackend{}, fmt.Errorf("kafka audit sink requires a producer")
		}
		return auditBackend{store: auditkafka.New(in.producer, cfg.Kafka.AuditTopic), close: noop}, nil
	case config.AuditSinkMemory:
		return auditBackend{store: auditmemory.New(), close: noop}, nil
	default:
		fs, err := auditfile.Open(cfg.Audit.LogPath)
		if err != nil {
			return auditBackend{}, fmt.Errorf("open audit log: %w", err)
		}
		return auditBackend{store: fs, close: func() { _ = fs.Close() }}, nil
	}
}

type app struct {
	publisher *publisher.Publisher
	resources []httptransport.Registrar
}

// buildApp wires the enrichment orchestrator and the CRUD modules. Postgres
// stores are used when a database is configured.
func buildApp(cfg config.Config, log *slog.Logger, in *infra, auditStore audit.Store) app {
	pubOpts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithMetrics(auditmetrics.New()),
		publisher.WithWriteTimeout(cfg.Audit.WriteTimeout),
	}
	if cfg.Audit.BufferSize > 0 {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(cfg.Audit.BufferSize))
	}
	pub := publisher.New(auditStore, pubOpts...)

	em := enrichmentmetrics.New()
	tr := tracer.NewOTel()
	newAdapter := func(id string, c config.ClientConfig) *adapter.Adapter {
		return adapter.New(adapter.Config{ID: id, BaseURL: c.BaseURL, Timeout: c.Timeout},
			adapter.WithLogger(log), adapter.WithMetrics(em))
	}

	postalAdapter := adapter.New(
		postal.NewAdapterConfig(adapter.Config{BaseURL: cfg.Postal.BaseURL, Timeout: cfg.Postal.Timeout}),
		adapter.WithLogger(log), adapter.WithMetrics(em),
	)
	var postalLookup ports.PostalLookup = postal.New(postalAdapter, postal.WithTracer(tr))
	var postalCache cache.Store = cache.NewInMemoryStore(cfg.Redis.PostalCacheTTL)
	if in.redis != nil {
		postalCache = cache.NewRedisStore(in.redis.Client, cfg.Redis.PostalCacheTTL)
	}
	postalLookup = cache.NewLookup(postalLookup, postalCache, cache.WithLogger(log), cache.WithMetrics(em))

	orchestrator := enrichment.New(
		postalLookup,
		eligibility.New(newAdapter(eligibility.ProviderID, cfg.Elig), eligibility.WithTracer(tr)),
		geo.New(newAdapter(geo.ProviderID, cfg.Geo), geo.WithTracer(tr)),
		pub,
		enrichment.WithLogger(log),
		enrichment.WithMetrics(em),
		enrichment.WithTracer(tr),
	)

	var (
		students studentstore.Store = studentstore.NewInMemory()
		routes   routestore.Store   = routestore.NewInMemory()
		trips    tripstore.Store    = tripstore.NewInMemory()
	)
	if in.db != nil {
		students = studentstore.NewPostgres(in.db.DB())
		routes = routestore.NewPostgres(in.db.DB())
		trips = tripstore.NewPostgres(in.db.DB())
	}

	m := metrics.New()
	return app{
		publisher: pub,
		resources: []httptransport.Registrar{
			studenthandler.New(studentservice.New(students, orchestrator,
				studentservice.WithLogger(log), studentservice.WithObserver(m)), log),
			routehandler.New(routeservice.New(routes, orchestrator, trips,
				routeservice.WithLogger(log), routeservice.WithObserver(m)), log),
			triphandler.New(tripservice.New(trips, routes,
				tripservice.WithLogger(log), tripservice.WithObserver(m)), log),
		},
	}
}
