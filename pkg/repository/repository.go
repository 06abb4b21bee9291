package repository

import (
	"context"

	"github.com/garnizeh/trainhub/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type ProgramRepo interface {
	CreateProgram(ctx context.Context, p *models.Program) (int64, error)
	GetProgram(ctx context.Context, id int64) (*models.Program, error)
	// ListPrograms returns active programs newest-first, each carrying its
	// module count.
	ListPrograms(ctx context.Context) ([]models.Program, error)
	UpdateProgram(ctx context.Context, p *models.Program) error
	SoftDeleteProgram(ctx context.Context, id int64) error
}

type ModuleRepo interface {
	CreateModule(ctx context.Context, m *models.Module) (int64, error)
	GetModule(ctx context.Context, id int64) (*models.Module, error)
	// ListModulesByProgram orders by order_index then created_date.
	ListModulesByProgram(ctx context.Context, programID int64) ([]models.Module, error)
	UpdateModule(ctx context.Context, m *models.Module) error
	ReorderModule(ctx context.Context, id int64, orderIndex int) error
	DeleteModule(ctx context.Context, id int64) error
	// ListModuleRefs maps every live module id to its program id.
	ListModuleRefs(ctx context.Context) (map[int64]int64, error)
}

type EmployeeRepo interface {
	CreateEmployee(ctx context.Context, e *models.Employee) (int64, error)
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	// ListEmployees returns active employees ordered by last then first name.
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, e *models.Employee) error
	SoftDeleteEmployee(ctx context.Context, id int64) error
}

type ProgressRepo interface {
	// UpsertProgress inserts or fully replaces the row keyed on
	// (employee_id, module_id).
	UpsertProgress(ctx context.Context, p *models.Progress) (int64, error)
	// AssignModules upserts one fresh not_started row per module inside a
	// single transaction; on any failure no row is touched.
	AssignModules(ctx context.Context, employeeID, programID int64, moduleIDs []int64, startedAt int64) error
	GetProgress(ctx context.Context, employeeID, moduleID int64) (*models.Progress, error)
	// UpdateProgressStatus is a partial update: nil started/completed/score
	// leave the stored values untouched.
	UpdateProgressStatus(ctx context.Context, employeeID, moduleID int64, status models.Status, started, completed *int64, score *float64) error
	ListProgressByEmployee(ctx context.Context, employeeID int64) ([]models.Progress, error)
	ListAllProgress(ctx context.Context) ([]models.Progress, error)
}

type AccountRepo interface {
	CreateAccount(ctx context.Context, a *models.Account) (int64, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

type SchemaRepo interface {
	CreateSchema(ctx context.Context, version, description, schemaJSON string) (int64, error)
	GetSchemaByVersion(ctx context.Context, version string) (*models.ImportSchema, error)
	ListSchemas(ctx context.Context) ([]models.ImportSchema, error)
	DeleteSchema(ctx context.Context, version string) error
}
