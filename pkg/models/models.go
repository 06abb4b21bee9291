package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are unix milliseconds unless noted; nullable columns map to
// pointer fields.

// Status is the lifecycle state of one progress row.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Program struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name" validate:"required"`
	Description string `json:"description,omitempty" db:"description"`
	Created     int64  `json:"created_date" db:"created_date"`
	Updated     int64  `json:"updated_date" db:"updated_date"`
	Active      bool   `json:"is_active" db:"is_active"`

	// ModuleCount is populated by list queries; zero-module programs carry 0.
	ModuleCount int64 `json:"module_count"`
}

type Module struct {
	ID              int64  `json:"id" db:"id"`
	ProgramID       int64  `json:"program_id" db:"program_id"`
	Name            string `json:"name" db:"name" validate:"required"`
	Description     string `json:"description,omitempty" db:"description"`
	OrderIndex      int    `json:"order_index" db:"order_index"`
	Content         string `json:"content,omitempty" db:"content"`
	DurationMinutes int    `json:"duration_minutes" db:"duration_minutes"`
	Required        bool   `json:"is_required" db:"is_required"`
	Created         int64  `json:"created_date" db:"created_date"`
}

type Employee struct {
	ID         int64  `json:"id" db:"id"`
	FirstName  string `json:"first_name" db:"first_name" validate:"required"`
	LastName   string `json:"last_name" db:"last_name" validate:"required"`
	Email      string `json:"email,omitempty" db:"email"`
	HireDate   string `json:"hire_date,omitempty" db:"hire_date"`
	Department string `json:"department,omitempty" db:"department"`
	Position   string `json:"position,omitempty" db:"position"`
	Active     bool   `json:"is_active" db:"is_active"`
	Created    int64  `json:"created_date" db:"created_date"`
}

// Progress is the tracking record for one employee's completion state of one
// module. At most one row exists per (EmployeeID, ModuleID) pair.
type Progress struct {
	ID         int64    `json:"id" db:"id"`
	EmployeeID int64    `json:"employee_id" db:"employee_id"`
	ModuleID   int64    `json:"module_id" db:"module_id"`
	ProgramID  int64    `json:"program_id" db:"program_id"`
	Status     Status   `json:"status" db:"status"`
	Started    *int64   `json:"started_date,omitempty" db:"started_date"`
	Completed  *int64   `json:"completed_date,omitempty" db:"completed_date"`
	Score      *float64 `json:"score,omitempty" db:"score"`
	Attempts   int      `json:"attempts" db:"attempts"`
}

// AssignmentResult reports the outcome of assigning a program to an employee.
type AssignmentResult struct {
	EmployeeID      int64 `json:"employee_id"`
	ProgramID       int64 `json:"program_id"`
	ModulesAssigned int   `json:"modules_assigned"`
}

// Assignment is one program on an employee's training list, rolled up from
// that employee's progress rows.
type Assignment struct {
	ProgramID        int64  `json:"program_id"`
	ProgramName      string `json:"program_name"`
	AssignedAt       *int64 `json:"assignment_date,omitempty"`
	TotalModules     int    `json:"total_modules"`
	CompletedModules int    `json:"completed_modules"`
	OverallStatus    Status `json:"overall_status"`
}

// EmployeeSummary is an employee plus module/program completion rollups.
type EmployeeSummary struct {
	Employee
	AssignedPrograms  int `json:"assigned_programs"`
	CompletedPrograms int `json:"completed_programs"`
	TotalModules      int `json:"total_modules"`
	CompletedModules  int `json:"completed_modules"`
	CompletionRate    int `json:"completion_rate"`
}

// DepartmentRollup is the per-department compliance view. Employees without a
// department land in the "No Department" bucket.
type DepartmentRollup struct {
	Department     string `json:"department"`
	Employees      int    `json:"employees"`
	WithAssignment int    `json:"employees_with_assignments"`
	Compliant      int    `json:"compliant_employees"`
	ComplianceRate int    `json:"compliance_rate"`
}

// CompletionSummary buckets every active employee by compliance standing.
type CompletionSummary struct {
	TotalEmployees     int `json:"total_employees"`
	TotalPrograms      int `json:"total_programs"`
	FullyCompliant     int `json:"fully_compliant"`
	PartiallyCompliant int `json:"partially_compliant"`
	NonCompliant       int `json:"non_compliant"`
	NoAssignments      int `json:"no_assignments"`
}

// Account is an operator login for the admin surface, not an employee record.
type Account struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

// ImportSchema is a versioned JSON Schema used to validate catalog imports.
type ImportSchema struct {
	ID          int64  `json:"id" db:"id"`
	Version     string `json:"version" db:"version"`
	Description string `json:"description,omitempty" db:"description"`
	SchemaJSON  string `json:"schema_json" db:"schema_json"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}
