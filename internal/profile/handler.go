// AngelaMos | 2026
// handler.go

package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vayutech/vayu-backend/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the scan endpoint. It is deliberately public:
// anyone who scans a band may read whatever the member chose to share.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/scan/{bui}", h.Resolve)
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	bui := chi.URLParam(r, "bui")

	profile, err := h.service.Resolve(r.Context(), bui)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, profile)
}
