package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"unibus/internal/route/models"
	"unibus/pkg/platform/httputil"
	"unibus/pkg/requestcontext"
)

// Service defines the route operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, def models.Definition) (*models.Route, error)
	Update(ctx context.Context, id int64, def models.Definition) (*models.Route, error)
	Get(ctx context.Context, id int64) (*models.Route, error)
	List(ctx context.Context, skip, limit int) ([]*models.Route, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/routes", h.HandleList)
	r.Post("/routes", h.HandleCreate)
	r.Get("/routes/{id}", h.HandleGet)
	r.Put("/routes/{id}", h.HandleUpdate)
	r.Delete("/routes/{id}", h.HandleDelete)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	routes, err := h.service.List(ctx, page.Skip, page.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list routes failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRouteResponses(routes))
}

// HandleCreate answers 201 when the route was geo-enriched and 202 when it
// was stored without distance and duration.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RouteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	route, err := h.service.Create(ctx, req.toDefinition())
	if err != nil {
		h.logFailure(ctx, "create route failed", err)
		httputil.WriteError(w, err)
		return
	}
	status := http.StatusCreated
	if !route.GeoEnriched() {
		status = http.StatusAccepted
	}
	httputil.WriteJSON(w, status, toRouteResponse(route))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	route, err := h.service.Get(ctx, id)
	if err != nil {
		h.logFailure(ctx, "get route failed", err, "route_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRouteResponse(route))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[RouteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	route, err := h.service.Update(ctx, id, req.toDefinition())
	if err != nil {
		h.logFailure(ctx, "update route failed", err, "route_id", id)
		httputil.WriteError(w, err)
		return
	}
	status := http.StatusOK
	if !route.GeoEnriched() {
		status = http.StatusAccepted
	}
	httputil.WriteJSON(w, status, toRouteResponse(route))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logFailure(ctx, "delete route failed", err, "route_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", requestcontext.RequestID(ctx))
	if httputil.IsClientError(err) {
		h.logger.InfoContext(ctx, msg, attrs...)
		return
	}
	h.logger.ErrorContext(ctx, msg, attrs...)
}
