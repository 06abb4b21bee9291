package api

import (
	"net/http"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

// ReportsHandler serves the dashboard rollups. Every report is recomputed
// from progress rows on each call.
type ReportsHandler struct {
	queries *training.Queries
}

func NewReportsHandler(q *training.Queries) *ReportsHandler {
	return &ReportsHandler{queries: q}
}

func (h *ReportsHandler) DepartmentCompliance(w http.ResponseWriter, r *http.Request) {
	rollups, err := h.queries.DepartmentCompliance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rollups == nil {
		rollups = []models.DepartmentRollup{}
	}

	writeData(w, http.StatusOK, rollups)
}

func (h *ReportsHandler) CompletionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.queries.CompletionSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, summary)
}
