package training

import (
	"context"

	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
)

// Queries is the externally consumed read side: each operation is a thin
// composition of store fetches and the pure rollup functions. Results are
// computed eagerly on every call; there is no cache to invalidate.
type Queries struct {
	programs  repository.ProgramRepo
	modules   repository.ModuleRepo
	employees repository.EmployeeRepo
	progress  repository.ProgressRepo
}

func NewQueries(programs repository.ProgramRepo, modules repository.ModuleRepo, employees repository.EmployeeRepo, progress repository.ProgressRepo) *Queries {
	return &Queries{programs: programs, modules: modules, employees: employees, progress: progress}
}

// ListProgramsWithModuleCount returns active programs newest-first; each
// entry carries its module count (0 for module-less programs, never null).
func (q *Queries) ListProgramsWithModuleCount(ctx context.Context) ([]models.Program, error) {
	return q.programs.ListPrograms(ctx)
}

// GetEmployeeAssignments rolls the employee's progress rows up into one entry
// per assigned program. Soft-deleted programs still appear while rows
// reference them; orphaned rows (deleted modules) are skipped.
func (q *Queries) GetEmployeeAssignments(ctx context.Context, employeeID int64) ([]models.Assignment, error) {
	emp, err := q.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, &NotFoundError{Msg: "employee not found"}
	}

	rows, err := q.progress.ListProgressByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	refs, err := q.modules.ListModuleRefs(ctx)
	if err != nil {
		return nil, err
	}

	snap := Snapshot{Rows: rows, ModuleRefs: refs}

	names := make(map[int64]string)
	for _, row := range snap.LiveRows() {
		if _, ok := names[row.ProgramID]; ok {
			continue
		}
		prog, err := q.programs.GetProgram(ctx, row.ProgramID)
		if err != nil {
			return nil, err
		}
		if prog != nil {
			names[row.ProgramID] = prog.Name
		}
	}

	assignments := BuildAssignments(snap, names)
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}

// ListEmployeesWithProgressSummary returns every active employee with module
// and program completion rollups.
func (q *Queries) ListEmployeesWithProgressSummary(ctx context.Context) ([]models.EmployeeSummary, error) {
	employees, err := q.employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	rowsByEmployee, refs, err := q.progressByEmployee(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		snap := Snapshot{Rows: rowsByEmployee[emp.ID], ModuleRefs: refs}
		out = append(out, SummarizeEmployee(emp, snap))
	}
	return out, nil
}

// GetEmployeeSummary returns the rollup for a single employee.
func (q *Queries) GetEmployeeSummary(ctx context.Context, employeeID int64) (*models.EmployeeSummary, error) {
	emp, err := q.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.Active {
		return nil, &NotFoundError{Msg: "employee not found"}
	}

	rows, err := q.progress.ListProgressByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	refs, err := q.modules.ListModuleRefs(ctx)
	if err != nil {
		return nil, err
	}

	s := SummarizeEmployee(*emp, Snapshot{Rows: rows, ModuleRefs: refs})
	return &s, nil
}

// DepartmentCompliance groups all active employees by department and computes
// the compliance rate over employees with at least one assignment.
func (q *Queries) DepartmentCompliance(ctx context.Context) ([]models.DepartmentRollup, error) {
	summaries, err := q.ListEmployeesWithProgressSummary(ctx)
	if err != nil {
		return nil, err
	}
	return DepartmentCompliance(summaries), nil
}

// CompletionSummary buckets all active employees by compliance standing.
func (q *Queries) CompletionSummary(ctx context.Context) (*models.CompletionSummary, error) {
	summaries, err := q.ListEmployeesWithProgressSummary(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := q.programs.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}

	c := SummarizeCompletion(summaries, len(programs))
	return &c, nil
}

func (q *Queries) progressByEmployee(ctx context.Context) (map[int64][]models.Progress, map[int64]int64, error) {
	rows, err := q.progress.ListAllProgress(ctx)
	if err != nil {
		return nil, nil, err
	}
	refs, err := q.modules.ListModuleRefs(ctx)
	if err != nil {
		return nil, nil, err
	}

	byEmployee := make(map[int64][]models.Progress)
	for _, row := range rows {
		byEmployee[row.EmployeeID] = append(byEmployee[row.EmployeeID], row)
	}
	return byEmployee, refs, nil
}
