// AngelaMos | 2026
// handler.go

package notification

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vayutech/vayu-backend/internal/core"
)

type CreateNotificationRequest struct {
	Title        string     `json:"title"        validate:"required,max=200"`
	Message      string     `json:"message"      validate:"required,max=2000"`
	Type         string     `json:"type"         validate:"required,max=50"`
	Target       string     `json:"target"       validate:"required,max=50"`
	ScheduledFor *time.Time `json:"scheduledFor" validate:"omitempty"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/notifications", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{notificationID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	n, err := h.service.Create(
		r.Context(),
		req.Title,
		req.Message,
		req.Type,
		req.Target,
		req.ScheduledFor,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, n)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "notificationID")
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "notification")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
