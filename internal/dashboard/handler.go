package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"health-risk-analyzer/internal/assessment"
	"health-risk-analyzer/internal/platform/web"
)

type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		h.logger.Error("dashboard summary failed", "error", err)
		web.Error(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}
	web.JSON(w, http.StatusOK, s)
}

// Count answers filtered counts, e.g. ?smoker=1&min_age=40&max_age=49.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f assessment.RecordFilter

	if v := q.Get("smoker"); v != "" {
		switch v {
		case "1", "true":
			t := true
			f.IsSmoker = &t
		case "0", "false":
			b := false
			f.IsSmoker = &b
		default:
			web.JSON(w, http.StatusBadRequest, web.ErrorBody{Error: "must be 0 or 1", Field: "smoker"})
			return
		}
	}
	for _, p := range []struct {
		key string
		dst **int
	}{{"min_age", &f.MinAge}, {"max_age", &f.MaxAge}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			web.JSON(w, http.StatusBadRequest, web.ErrorBody{Error: "must be an integer", Field: p.key})
			return
		}
		*p.dst = &n
	}

	n, err := h.svc.Count(r.Context(), f)
	if err != nil {
		h.logger.Error("dashboard count failed", "error", err)
		web.Error(w, http.StatusInternalServerError, "Failed to count records")
		return
	}
	web.JSON(w, http.StatusOK, map[string]int{"count": n})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/dashboard", h.Summary)
	r.Get("/dashboard/count", h.Count)
}
