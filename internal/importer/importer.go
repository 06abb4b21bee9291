package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
)

// Importer creates catalog entities (programs, their modules, employees) from
// a JSON payload that was validated against a versioned import schema.
type Importer struct {
	loader    *Loader
	programs  repository.ProgramRepo
	modules   repository.ModuleRepo
	employees repository.EmployeeRepo
}

func New(loader *Loader, programs repository.ProgramRepo, modules repository.ModuleRepo, employees repository.EmployeeRepo) *Importer {
	return &Importer{loader: loader, programs: programs, modules: modules, employees: employees}
}

type Payload struct {
	Programs  []ProgramImport  `json:"programs"`
	Employees []EmployeeImport `json:"employees"`
}

type ProgramImport struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Modules     []ModuleImport `json:"modules"`
}

type ModuleImport struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"duration_minutes"`
	Required        *bool  `json:"is_required"`
}

type EmployeeImport struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	HireDate   string `json:"hire_date"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type Result struct {
	ProgramsCreated  int `json:"programs_created"`
	ModulesCreated   int `json:"modules_created"`
	EmployeesCreated int `json:"employees_created"`
}

// Import validates raw against the schema version and creates the entities.
// Validation failures surface as ValidationError before anything is written.
func (i *Importer) Import(ctx context.Context, schemaVersion string, raw []byte) (*Result, error) {
	schema, ok := i.loader.GetSchema(schemaVersion)
	if !ok {
		return nil, &training.ValidationError{Msg: "unknown import schema version: " + schemaVersion}
	}

	verrs, err := schema.ValidateBytes(ctx, raw)
	if err != nil {
		return nil, &training.ValidationError{Msg: fmt.Sprintf("payload is not valid JSON: %v", err)}
	}
	if len(verrs) > 0 {
		return nil, &training.ValidationError{Msg: "payload rejected by schema: " + verrs[0].Error()}
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &training.ValidationError{Msg: fmt.Sprintf("decode payload: %v", err)}
	}

	res := &Result{}
	for _, p := range payload.Programs {
		programID, err := i.programs.CreateProgram(ctx, &models.Program{Name: p.Name, Description: p.Description})
		if err != nil {
			return nil, fmt.Errorf("import program %q: %w", p.Name, err)
		}
		res.ProgramsCreated++

		for idx, m := range p.Modules {
			required := true
			if m.Required != nil {
				required = *m.Required
			}
			mod := &models.Module{
				ProgramID:       programID,
				Name:            m.Name,
				Description:     m.Description,
				Content:         m.Content,
				OrderIndex:      idx,
				DurationMinutes: m.DurationMinutes,
				Required:        required,
			}
			if _, err := i.modules.CreateModule(ctx, mod); err != nil {
				return nil, fmt.Errorf("import module %q: %w", m.Name, err)
			}
			res.ModulesCreated++
		}
	}

	for _, e := range payload.Employees {
		emp := &models.Employee{
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			Email:      e.Email,
			HireDate:   e.HireDate,
			Department: e.Department,
			Position:   e.Position,
		}
		if _, err := i.employees.CreateEmployee(ctx, emp); err != nil {
			return nil, fmt.Errorf("import employee %s %s: %w", e.FirstName, e.LastName, err)
		}
		res.EmployeesCreated++
	}

	return res, nil
}
