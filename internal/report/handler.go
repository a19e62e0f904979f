// AngelaMos | 2026
// handler.go

package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vayutech/vayu-backend/internal/core"
)

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
	r.Route("/admin/reports", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/sources", h.ListSources)
		r.Get("/templates", h.ListTemplates)
		r.Post("/templates/{templateID}/run", h.RunTemplate)
		r.Post("/run", h.Run)
	})
}

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources := make([]SourceDef, 0, len(Sources))
	for _, key := range []string{
		SourceUsers, SourceMembers, SourceBands, SourceSubscriptions,
	} {
		sources = append(sources, Sources[key])
	}
	core.OK(w, sources)
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	core.OK(w, Templates)
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var q Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(q); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Run(r.Context(), q)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) RunTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")

	tpl, ok := FindTemplate(templateID)
	if !ok {
		core.NotFound(w, "report template")
		return
	}

	result, err := h.service.Run(r.Context(), Query{
		Source:  tpl.Source,
		Columns: tpl.Columns,
		Filters: tpl.Filters,
	})
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}
