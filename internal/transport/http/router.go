package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"unibus/pkg/platform/middleware/request"
	"unibus/pkg/platform/validation"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything NewRouter mounts. Metrics may be nil to leave
// /metrics unexposed.
type Deps struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	Latency        *request.Metrics
	Metrics        http.Handler
	Health         Registrar
	Resources      []Registrar
}

// NewRouter wires the public endpoints behind the request middleware chain.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(request.Logger(d.Logger))
	r.Use(request.Latency(d.Latency))

	if d.Health != nil {
		d.Health.Register(r)
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Group(func(api chi.Router) {
		if d.RequestTimeout > 0 {
			api.Use(request.Timeout(d.RequestTimeout))
		}
		api.Use(request.BodyLimit(validation.MaxBodySize))
		api.Use(request.ContentTypeJSON)
		for _, res := range d.Resources {
			res.Register(api)
		}
	})

	return r
}
