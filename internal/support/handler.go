// AngelaMos | 2026
// handler.go

package support

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/middleware"
)

type CreateTicketRequest struct {
	Subject     string `json:"subject"     validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	Category    string `json:"category"    validate:"required,max=50"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
}

type ReplyRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
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
	r.Route("/support/tickets", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListOwn)
		r.Post("/", h.Create)
		r.Post("/{ticketID}/reply", h.UserReply)
	})

	r.Route("/admin/support/tickets", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListAll)
		r.Get("/{ticketID}", h.Get)
		r.Post("/{ticketID}/reply", h.AdminReply)
		r.Put("/{ticketID}/status", h.SetStatus)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticket, err := h.service.Create(
		r.Context(),
		userID,
		req.Subject,
		req.Description,
		req.Category,
		req.Priority,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ticket)
}

func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	tickets, err := h.service.List(r.Context(), userID, "", "")
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, tickets)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.service.List(
		r.Context(),
		"",
		r.URL.Query().Get("status"),
		r.URL.Query().Get("priority"),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, tickets)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.service.Get(r.Context(), chi.URLParam(r, "ticketID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "ticket")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ticket)
}

func (h *Handler) UserReply(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r, SenderUser)
}

func (h *Handler) AdminReply(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r, SenderAdmin)
}

func (h *Handler) reply(w http.ResponseWriter, r *http.Request, from string) {
	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticketID := chi.URLParam(r, "ticketID")

	// Users may only post into their own threads.
	if from == SenderUser {
		ticket, err := h.service.Get(r.Context(), ticketID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.NotFound(w, "ticket")
				return
			}
			core.InternalServerError(w, err)
			return
		}
		if ticket.UserID != middleware.GetUserID(r.Context()) {
			core.NotFound(w, "ticket")
			return
		}
	}

	ticket, err := h.service.Reply(r.Context(), ticketID, from, req.Message)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "ticket")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ticket)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticket, err := h.service.SetStatus(
		r.Context(),
		chi.URLParam(r, "ticketID"),
		req.Status,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "ticket")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ticket)
}
