package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"unibus/internal/student/models"
	"unibus/pkg/platform/httputil"
	"unibus/pkg/requestcontext"
)

// Service defines the student operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, profile models.Profile) (*models.Student, error)
	Update(ctx context.Context, id int64, profile models.Profile) (*models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, skip, limit int) ([]*models.Student, error)
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
	r.Get("/students", h.HandleList)
	r.Post("/students", h.HandleCreate)
	r.Get("/students/{id}", h.HandleGet)
	r.Put("/students/{id}", h.HandleUpdate)
	r.Delete("/students/{id}", h.HandleDelete)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	students, err := h.service.List(ctx, page.Skip, page.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list students failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStudentResponses(students))
}

// HandleCreate admits and registers a student. Admission rejections map to
// 400 invalid_postal_code and 422 not_eligible.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[StudentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	student, err := h.service.Create(ctx, req.toProfile())
	if err != nil {
		h.logFailure(ctx, "create student failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toStudentResponse(student))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	student, err := h.service.Get(ctx, id)
	if err != nil {
		h.logFailure(ctx, "get student failed", err, "student_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStudentResponse(student))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[StudentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	student, err := h.service.Update(ctx, id, req.toProfile())
	if err != nil {
		h.logFailure(ctx, "update student failed", err, "student_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStudentResponse(student))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logFailure(ctx, "delete student failed", err, "student_id", id)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

// logFailure logs client-caused failures at INFO and everything else at ERROR.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", requestcontext.RequestID(ctx))
	if httputil.IsClientError(err) {
		h.logger.InfoContext(ctx, msg, attrs...)
		return
	}
	h.logger.ErrorContext(ctx, msg, attrs...)
}
