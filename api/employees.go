package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
)

type EmployeesHandler struct {
	employeeRepo repository.EmployeeRepo
	queries      *training.Queries
}

func NewEmployeesHandler(er repository.EmployeeRepo, q *training.Queries) *EmployeesHandler {
	return &EmployeesHandler{employeeRepo: er, queries: q}
}

type employeeRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	HireDate   string `json:"hire_date"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func (h *EmployeesHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	e := &models.Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		HireDate:   req.HireDate,
		Department: req.Department,
		Position:   req.Position,
	}

	id, err := h.employeeRepo.CreateEmployee(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.employeeRepo.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, created)
}

// ListEmployees returns every active employee with progress rollups attached,
// the shape the employee list view consumes directly.
func (h *EmployeesHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.queries.ListEmployeesWithProgressSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []models.EmployeeSummary{}
	}

	writeData(w, http.StatusOK, summaries)
}

func (h *EmployeesHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.queries.GetEmployeeSummary(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, summary)
}

func (h *EmployeesHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.employeeRepo.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing == nil || !existing.Active {
		writeFailure(w, http.StatusNotFound, "employee not found")
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.HireDate = req.HireDate
	existing.Department = req.Department
	existing.Position = req.Position

	if err := h.employeeRepo.UpdateEmployee(r.Context(), existing); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, existing)
}

func (h *EmployeesHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.employeeRepo.SoftDeleteEmployee(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]int64{"id": id})
}
