// AngelaMos | 2026
// handler.go

package subscription

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/middleware"
)

type PurchaseRequest struct {
	Plan string `json:"plan" validate:"required,oneof=individual family"`
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
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/subscriptions", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Purchase)
		r.Post("/{subscriptionID}/cancel", h.Cancel)
		r.Get("/slots", h.Slots)
	})

	r.Get("/plans", h.ListPlans)
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans := make([]Plan, 0, len(Plans))
	for _, id := range []string{"individual", "family"} {
		plans = append(plans, Plans[id])
	}
	core.OK(w, plans)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	subs, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, subs)
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub, err := h.service.Purchase(r.Context(), userID, req.Plan)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, sub)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	subscriptionID := chi.URLParam(r, "subscriptionID")

	sub, err := h.service.Cancel(r.Context(), userID, subscriptionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "subscription")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sub)
}

func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	slots, err := h.service.Slots(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, slots)
}
