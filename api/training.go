package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

// TrainingHandler exposes the assignment workflow: put a program on an
// employee's list, read the rolled-up list back, and move individual module
// progress through its lifecycle.
type TrainingHandler struct {
	assigner *training.Assigner
	mutator  *training.Mutator
	queries  *training.Queries
}

func NewTrainingHandler(a *training.Assigner, m *training.Mutator, q *training.Queries) *TrainingHandler {
	return &TrainingHandler{assigner: a, mutator: m, queries: q}
}

type assignRequest struct {
	ProgramID int64 `json:"program_id"`
}

func (h *TrainingHandler) AssignProgram(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.ProgramID <= 0 {
		writeFailure(w, http.StatusBadRequest, "program_id is required")
		return
	}

	result, err := h.assigner.Assign(r.Context(), employeeID, req.ProgramID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *TrainingHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	assignments, err := h.queries.GetEmployeeAssignments(r.Context(), employeeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, assignments)
}

type progressRequest struct {
	Status models.Status `json:"status"`
	Score  *float64      `json:"score"`
}

func (h *TrainingHandler) SetProgressStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(w, r, "moduleId")
	if !ok {
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	row, err := h.mutator.SetStatus(r.Context(), employeeID, moduleID, req.Status, req.Score)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, row)
}
