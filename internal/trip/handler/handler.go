package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"unibus/internal/trip/models"
	"unibus/pkg/platform/httputil"
	"unibus/pkg/requestcontext"
)

// Service defines the trip operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, sched models.Schedule) (*models.Trip, error)
	Update(ctx context.Context, id int64, patch models.Patch) (*models.Trip, error)
	Get(ctx context.Context, id int64) (*models.Detail, error)
	List(ctx context.Context, skip, limit int) ([]*models.Trip, error)
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
	r.Get("/trips", h.HandleList)
	r.Post("/trips", h.HandleCreate)
	r.Get("/trips/{id}", h.HandleGet)
	r.Put("/trips/{id}", h.HandleUpdate)
	r.Delete("/trips/{id}", h.HandleDelete)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	trips, err := h.service.List(ctx, page.Skip, page.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list trips failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTripResponses(trips))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTripRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	trip, err := h.service.Create(ctx, req.toSchedule())
	if err != nil {
		h.logFailure(ctx, "create trip failed", err, "route_id", req.RouteID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toTripResponse(trip))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.service.Get(ctx, id)
	if err != nil {
		h.logFailure(ctx, "get trip failed", err, "trip_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTripDetailResponse(detail))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateTripRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	trip, err := h.service.Update(ctx, id, req.toPatch())
	if err != nil {
		h.logFailure(ctx, "update trip failed", err, "trip_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTripResponse(trip))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logFailure(ctx, "delete trip failed", err, "trip_id", id)
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
