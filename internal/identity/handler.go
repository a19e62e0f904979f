// AngelaMos | 2026
// handler.go

package identity

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
	r.Route("/auth", func(r chi.Router) {
		r.Post("/otp/request", h.RequestCode)
		r.Post("/otp/verify", h.VerifyCode)
		r.Post("/register", h.CompleteRegistration)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
			r.Put("/me", h.UpdateMe)
		})
	})
}

// RequestCode always reports success for a well-formed number; no code
// is delivered anywhere.
func (h *Handler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.RequestCode(r.Context(), req.Phone); err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid mobile number")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]bool{"sent": true})
}

func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.VerifyCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid or expired verification")
		case errors.Is(err, core.ErrNotFound):
			core.BadRequest(w, "no verification pending for this number")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	resp := VerifyCodeResponse{IsNewUser: result.IsNewUser}
	if result.User != nil {
		user := ToUserResponse(result.User)
		resp.Token = result.Token
		resp.ExpiresAt = result.ExpiresAt
		resp.User = &user
	}

	core.OK(w, resp)
}

func (h *Handler) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	var req CompleteRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.CompleteRegistration(
		r.Context(),
		req.Phone,
		req.Name,
		req.Email,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("phone"))
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid or expired verification")
		case errors.Is(err, core.ErrNotFound):
			core.BadRequest(w, "no verification pending for this number")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, SessionResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      ToUserResponse(result.User),
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}
