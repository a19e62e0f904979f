// AngelaMos | 2026
// handler.go

package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vayutech/vayu-backend/internal/core"
)

type AddAllergyRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Category string `json:"category" validate:"required,max=50"`
	Severity string `json:"severity" validate:"required,oneof=low medium high"`
}

type AddConditionRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Category string `json:"category" validate:"required,max=50"`
	Critical bool   `json:"critical"`
}

type AddFAQRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer"   validate:"required,max=2000"`
	Category string `json:"category" validate:"required,max=50"`
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

// RegisterRoutes mounts read-only list endpoints for the consumer app
// and full CRUD under the admin prefix.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/content", func(r chi.Router) {
		r.Get("/allergies", h.ListAllergies)
		r.Get("/conditions", h.ListConditions)
		r.Get("/faqs", h.ListFAQs)
	})

	r.Route("/admin/content", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/allergies", h.AddAllergy)
		r.Delete("/allergies/{id}", h.DeleteAllergy)
		r.Post("/conditions", h.AddCondition)
		r.Delete("/conditions/{id}", h.DeleteCondition)
		r.Post("/faqs", h.AddFAQ)
		r.Delete("/faqs/{id}", h.DeleteFAQ)
	})
}

func (h *Handler) ListAllergies(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAllergies(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, items)
}

func (h *Handler) ListConditions(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListConditions(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, items)
}

func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListFAQs(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, items)
}

func (h *Handler) AddAllergy(w http.ResponseWriter, r *http.Request) {
	var req AddAllergyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.AddAllergy(
		r.Context(),
		req.Name,
		req.Category,
		req.Severity,
	)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, entry)
}

func (h *Handler) DeleteAllergy(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAllergy(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "allergy")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) AddCondition(w http.ResponseWriter, r *http.Request) {
	var req AddConditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.AddCondition(
		r.Context(),
		req.Name,
		req.Category,
		req.Critical,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, entry)
}

func (h *Handler) DeleteCondition(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCondition(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "condition")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) AddFAQ(w http.ResponseWriter, r *http.Request) {
	var req AddFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.AddFAQ(
		r.Context(),
		req.Question,
		req.Answer,
		req.Category,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, entry)
}

func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFAQ(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "faq")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.NoContent(w)
}
