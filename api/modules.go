package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
)

type ModulesHandler struct {
	moduleRepo  repository.ModuleRepo
	programRepo repository.ProgramRepo
}

func NewModulesHandler(mr repository.ModuleRepo, pr repository.ProgramRepo) *ModulesHandler {
	return &ModulesHandler{moduleRepo: mr, programRepo: pr}
}

type moduleRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	OrderIndex      int    `json:"order_index"`
	DurationMinutes int    `json:"duration_minutes"`
	Required        *bool  `json:"is_required"`
}

func (h *ModulesHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	programID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	prog, err := h.programRepo.GetProgram(r.Context(), programID)
	if err != nil {
		writeError(w, err)
		return
	}
	if prog == nil || !prog.Active {
		writeFailure(w, http.StatusNotFound, "program not found")
		return
	}

	var req moduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	required := true
	if req.Required != nil {
		required = *req.Required
	}
	m := &models.Module{
		ProgramID:       programID,
		Name:            req.Name,
		Description:     req.Description,
		Content:         req.Content,
		OrderIndex:      req.OrderIndex,
		DurationMinutes: req.DurationMinutes,
		Required:        required,
	}

	id, err := h.moduleRepo.CreateModule(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.moduleRepo.GetModule(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, created)
}

func (h *ModulesHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	programID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	mods, err := h.moduleRepo.ListModulesByProgram(r.Context(), programID)
	if err != nil {
		writeError(w, err)
		return
	}
	if mods == nil {
		mods = []models.Module{}
	}

	writeData(w, http.StatusOK, mods)
}

func (h *ModulesHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.moduleRepo.GetModule(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing == nil {
		writeFailure(w, http.StatusNotFound, "module not found")
		return
	}

	var req moduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Content = req.Content
	existing.OrderIndex = req.OrderIndex
	existing.DurationMinutes = req.DurationMinutes
	if req.Required != nil {
		existing.Required = *req.Required
	}

	if err := h.moduleRepo.UpdateModule(r.Context(), existing); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, existing)
}

type reorderRequest struct {
	OrderIndex int `json:"order_index"`
}

func (h *ModulesHandler) ReorderModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.moduleRepo.ReorderModule(r.Context(), id, req.OrderIndex); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.moduleRepo.GetModule(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (h *ModulesHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.moduleRepo.DeleteModule(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]int64{"id": id})
}
