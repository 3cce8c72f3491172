package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"health-risk-analyzer/internal/platform/web"
)

// Pinger is anything whose availability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store     Pinger
	logger    *slog.Logger
	startTime time.Time
}

func NewHandler(store Pinger, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger, startTime: time.Now()}
}

type Response struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	web.JSON(w, http.StatusOK, Response{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", "error", err)
		web.JSON(w, http.StatusServiceUnavailable, Response{
			Status: "not ready",
			Checks: map[string]string{"database": err.Error()},
		})
		return
	}
	web.JSON(w, http.StatusOK, Response{
		Status: "ready",
		Checks: map[string]string{"database": "ok"},
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
}
