// AngelaMos | 2026
// handler.go

package family

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/middleware"
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
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/members", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListMembers)
		r.Post("/", h.AddMember)
		r.Get("/{memberID}", h.GetMember)
		r.Put("/{memberID}", h.UpdateMember)
		r.Delete("/{memberID}", h.DeleteMember)
		r.Put("/{memberID}/visibility", h.SetVisibility)
	})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	members, err := h.service.ListMembers(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, members)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	member, err := h.service.GetMember(r.Context(), userID, memberID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "member")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, member)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	member, err := h.service.AddMember(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, member)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	member, err := h.service.UpdateMember(r.Context(), userID, memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "member")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, member)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	if err := h.service.DeleteMember(r.Context(), userID, memberID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "member")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	var req SetVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	member, err := h.service.SetVisibility(
		r.Context(),
		userID,
		memberID,
		req.Fields,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "member")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, member)
}
