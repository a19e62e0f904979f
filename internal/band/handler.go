// AngelaMos | 2026
// handler.go

package band

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/middleware"
)

type RegisterBandRequest struct {
	Serial string `json:"serial" validate:"required,min=1,max=32"`
	BUI    string `json:"bui"    validate:"required,min=1,max=32"`
}

type LinkBandRequest struct {
	MemberID string `json:"member_id" validate:"required"`
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
	r.Route("/bands", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListBands)
		r.Post("/", h.Register)
		r.Post("/{bandID}/link", h.Link)
		r.Post("/{bandID}/unlink", h.Unlink)
	})
}

func (h *Handler) ListBands(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	bands, err := h.service.ListBands(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, bands)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req RegisterBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	band, err := h.service.Register(r.Context(), userID, req.Serial, req.BUI)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredential):
			core.JSONError(w, core.NewAppError(
				"INVALID_CREDENTIAL",
				"invalid band serial number or unique identifier",
				http.StatusUnprocessableEntity,
			))
		case errors.Is(err, ErrAlreadyRegistered):
			core.JSONError(w, core.NewAppError(
				"ALREADY_REGISTERED",
				"this band is already registered",
				http.StatusConflict,
			))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, band)
}

func (h *Handler) Link(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bandID := chi.URLParam(r, "bandID")

	var req LinkBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	band, err := h.service.Link(r.Context(), userID, bandID, req.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuotaExceeded):
			core.JSONError(w, core.NewAppError(
				"QUOTA_EXCEEDED",
				"no member slots available on the current plan",
				http.StatusConflict,
			))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "band or member")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, band)
}

func (h *Handler) Unlink(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bandID := chi.URLParam(r, "bandID")

	band, err := h.service.Unlink(r.Context(), userID, bandID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "band")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, band)
}
