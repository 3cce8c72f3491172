package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"health-risk-analyzer/internal/assessment"
	"health-risk-analyzer/internal/platform/web"
)

type RecordGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*assessment.AnalysisRecord, error)
}

type Handler struct {
	records  RecordGetter
	renderer *Renderer
	logger   *slog.Logger
}

func NewHandler(records RecordGetter, renderer *Renderer, logger *slog.Logger) *Handler {
	return &Handler{records: records, renderer: renderer, logger: logger}
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	rec, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, assessment.ErrNotFound) {
			web.Error(w, http.StatusNotFound, "Analysis not found")
			return
		}
		h.logger.Error("failed to load analysis for report", "id", id, "error", err)
		web.Error(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}

	pdf, err := h.renderer.Render(*rec, assessment.ResultFor(*rec))
	if err != nil {
		h.logger.Error("failed to render report", "id", id, "error", err)
		web.Error(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", id))
	w.Write(pdf)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/analyses/{id}/report.pdf", h.Download)
}
