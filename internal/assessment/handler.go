package assessment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"health-risk-analyzer/internal/platform/web"
)

// maxBodyBytes caps an assessment request body.
const maxBodyBytes = 1 << 16

var allowedKeys = map[string]bool{
	"name":        true,
	"age":         true,
	"bmi":         true,
	"systolic_bp": true,
	"blood_sugar": true,
	"is_smoker":   true,
}

type Handler struct {
	svc    Service
	logger *slog.Logger
}

func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	for k := range raw {
		if !allowedKeys[k] {
			web.JSON(w, http.StatusBadRequest, web.ErrorBody{Error: "unknown field", Field: k})
			return
		}
	}

	res, err := h.svc.Analyze(r.Context(), raw)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			web.JSON(w, http.StatusBadRequest, web.ErrorBody{Error: verr.Error(), Field: verr.Field})
			return
		}
		h.logger.Error("analysis failed", "error", err)
		web.Error(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	web.JSON(w, http.StatusOK, res)
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.Error(w, http.StatusNotFound, "Analysis not found")
			return
		}
		h.logger.Error("failed to load analysis", "id", id, "error", err)
		web.Error(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}

	web.JSON(w, http.StatusOK, rec)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/analyze", h.Analyze)
	r.Get("/analyses/{id}", h.GetRecord)
}
