package training

import (
	"context"
	"time"

	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
)

// Assigner creates the tracking records that put a program on an employee's
// training list: one fresh not_started progress row per module of the
// program. Reassigning a program the employee already holds resets every row
// (status, timestamps, score, attempts) — the upsert keyed on
// (employee_id, module_id) guarantees the pair never duplicates.
type Assigner struct {
	programs  repository.ProgramRepo
	modules   repository.ModuleRepo
	employees repository.EmployeeRepo
	progress  repository.ProgressRepo
}

func NewAssigner(programs repository.ProgramRepo, modules repository.ModuleRepo, employees repository.EmployeeRepo, progress repository.ProgressRepo) *Assigner {
	return &Assigner{programs: programs, modules: modules, employees: employees, progress: progress}
}

// Assign writes one progress row per module of the program, all inside one
// transaction. A program with zero modules is a normal no-op returning
// ModulesAssigned = 0.
func (a *Assigner) Assign(ctx context.Context, employeeID, programID int64) (*models.AssignmentResult, error) {
	emp, err := a.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.Active {
		return nil, &NotFoundError{Msg: "employee not found"}
	}

	prog, err := a.programs.GetProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	if prog == nil || !prog.Active {
		return nil, &NotFoundError{Msg: "program not found"}
	}

	mods, err := a.modules.ListModulesByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	result := &models.AssignmentResult{EmployeeID: employeeID, ProgramID: programID}
	if len(mods) == 0 {
		return result, nil
	}

	moduleIDs := make([]int64, len(mods))
	for i, m := range mods {
		moduleIDs[i] = m.ID
	}

	if err := a.progress.AssignModules(ctx, employeeID, programID, moduleIDs, time.Now().UTC().UnixMilli()); err != nil {
		return nil, &AssignmentError{Msg: "assignment failed", Err: err}
	}

	result.ModulesAssigned = len(mods)
	return result, nil
}
