package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
	"github.com/gorilla/mux"
)

type ProgramsHandler struct {
	programRepo repository.ProgramRepo
	queries     *training.Queries
}

func NewProgramsHandler(pr repository.ProgramRepo, q *training.Queries) *ProgramsHandler {
	return &ProgramsHandler{programRepo: pr, queries: q}
}

type programRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ProgramsHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	p := &models.Program{Name: req.Name, Description: req.Description}
	id, err := h.programRepo.CreateProgram(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.programRepo.GetProgram(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, created)
}

func (h *ProgramsHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.queries.ListProgramsWithModuleCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if programs == nil {
		programs = []models.Program{}
	}

	writeData(w, http.StatusOK, programs)
}

func (h *ProgramsHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.programRepo.GetProgram(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil || !p.Active {
		writeFailure(w, http.StatusNotFound, "program not found")
		return
	}

	writeData(w, http.StatusOK, p)
}

func (h *ProgramsHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req programRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	p := &models.Program{ID: id, Name: req.Name, Description: req.Description}
	if err := h.programRepo.UpdateProgram(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.programRepo.GetProgram(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (h *ProgramsHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.programRepo.SoftDeleteProgram(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

// pathID parses an int64 path variable and writes a failure on bad input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeFailure(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
