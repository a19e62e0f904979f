// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/vayutech/vayu-backend/internal/core"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     Account   `json:"admin"`
}

type AddInventoryRequest struct {
	Serial string `json:"serial" validate:"required,min=1,max=32"`
	BUI    string `json:"bui"    validate:"required,min=1,max=32"`
}

type Handler struct {
	service    *Service
	validator  *validator.Validate
	storePing  func(ctx context.Context) error
	redisPing  func(ctx context.Context) error
	redisStats func() *redis.PoolStats
	backend    string
}

type HandlerConfig struct {
	Service    *Service
	StorePing  func(ctx context.Context) error
	RedisPing  func(ctx context.Context) error
	RedisStats func() *redis.PoolStats
	Backend    string
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		service:    cfg.Service,
		validator:  validator.New(validator.WithRequiredStructEnabled()),
		storePing:  cfg.StorePing,
		redisPing:  cfg.RedisPing,
		redisStats: cfg.RedisStats,
		backend:    cfg.Backend,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Post("/admin/login", h.Login)

	guard := func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)
	}

	r.Route("/admin/users", func(r chi.Router) {
		guard(r)
		r.Get("/", h.ListUsers)
		r.Get("/{userID}", h.GetUser)
		r.Delete("/{userID}", h.DeleteUser)
	})

	r.Route("/admin/subscriptions", func(r chi.Router) {
		guard(r)
		r.Get("/", h.ListSubscriptions)
		r.Post("/{subscriptionID}/cancel", h.CancelSubscription)
	})

	r.Route("/admin/bands", func(r chi.Router) {
		guard(r)
		r.Get("/registered", h.ListRegisteredBands)
		r.Post("/{bandID}/unregister", h.UnregisterBand)
		r.Get("/inventory", h.ListInventory)
		r.Post("/inventory", h.AddInventory)
		r.Delete("/inventory/{serial}", h.DeleteInventory)
	})

	r.Route("/admin/stats", func(r chi.Router) {
		guard(r)
		r.Get("/", h.GetSystemStats)
		r.Get("/runtime", h.GetRuntimeStats)
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	account, token, expiresAt, err := h.service.Login(
		r.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			core.JSONError(w, core.NewAppError(
				"INVALID_CREDENTIALS",
				"invalid email or password",
				http.StatusUnauthorized,
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     *account,
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, detail)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubscriptions(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, subs)
}

func (h *Handler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.CancelSubscription(
		r.Context(),
		chi.URLParam(r, "subscriptionID"),
	)
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

func (h *Handler) ListRegisteredBands(w http.ResponseWriter, r *http.Request) {
	bands, err := h.service.ListRegisteredBands(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, bands)
}

func (h *Handler) UnregisterBand(w http.ResponseWriter, r *http.Request) {
	if err := h.service.UnregisterBand(r.Context(), chi.URLParam(r, "bandID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "band")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.service.ListInventory(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, inventory)
}

func (h *Handler) AddInventory(w http.ResponseWriter, r *http.Request) {
	var req AddInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.AddInventory(r.Context(), req.Serial, req.BUI)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.NewAppError(
				"DUPLICATE_BAND",
				"serial or unique identifier already provisioned",
				http.StatusConflict,
			))
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, entry)
}

func (h *Handler) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	serial := chi.URLParam(r, "serial")
	if err := h.service.DeleteInventory(r.Context(), serial); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "inventory band")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.NoContent(w)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeHealthy := true
	if h.storePing != nil {
		if err := h.storePing(ctx); err != nil {
			storeHealthy = false
		}
	}

	redisHealthy := true
	if h.redisPing != nil {
		if err := h.redisPing(ctx); err != nil {
			redisHealthy = false
		}
	}

	core.OK(w, SystemStatsResponse{
		Store: StoreStatus{
			Backend: h.backend,
			Healthy: storeHealthy,
		},
		Redis: RedisStatus{
			Healthy: redisHealthy,
			Stats:   h.getRedisStats(),
		},
		Runtime: runtimeStats(),
	})
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, runtimeStats())
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

func runtimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

type SystemStatsResponse struct {
	Store   StoreStatus  `json:"store"`
	Redis   RedisStatus  `json:"redis"`
	Runtime RuntimeStats `json:"runtime"`
}

type StoreStatus struct {
	Backend string `json:"backend"`
	Healthy bool   `json:"healthy"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc"`
	MemSys       uint64 `json:"mem_sys"`
	NumGC        uint32 `json:"num_gc"`
}
