package training_test

import (
	"context"
	"errors"
	"testing"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

func TestAssign_CreatesOneRowPerModule(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	programID, moduleIDs := seedProgram(t, repo, "Safety", 3)
	empID := seedEmployee(t, repo, "Ada", "Lovelace", "Engineering")

	assigner := training.NewAssigner(repo, repo, repo, repo)
	result, err := assigner.Assign(ctx, empID, programID)
	if err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if result.ModulesAssigned != 3 {
		t.Fatalf("expected 3 modules assigned, got %d", result.ModulesAssigned)
	}
	if result.EmployeeID != empID || result.ProgramID != programID {
		t.Fatalf("unexpected result: %#v", result)
	}

	for _, moduleID := range moduleIDs {
		p, err := repo.GetProgress(ctx, empID, moduleID)
		if err != nil {
			t.Fatalf("GetProgress error: %v", err)
		}
		if p == nil || p.Status != models.StatusNotStarted {
			t.Fatalf("expected fresh not_started row for module %d, got: %#v", moduleID, p)
		}
		if p.Started == nil {
			t.Fatalf("expected assignment date recorded on module %d", moduleID)
		}
	}
}

func TestAssign_ReassignResetsProgress(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	programID, moduleIDs := seedProgram(t, repo, "Safety", 2)
	empID := seedEmployee(t, repo, "Ada", "Lovelace", "")

	assigner := training.NewAssigner(repo, repo, repo, repo)
	if _, err := assigner.Assign(ctx, empID, programID); err != nil {
		t.Fatalf("Assign error: %v", err)
	}

	// complete one module, then reassign
	mutator := training.NewMutator(repo, true)
	score := 92.0
	if _, err := mutator.SetStatus(ctx, empID, moduleIDs[0], models.StatusCompleted, &score); err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}

	result, err := assigner.Assign(ctx, empID, programID)
	if err != nil {
		t.Fatalf("reassign error: %v", err)
	}
	if result.ModulesAssigned != 2 {
		t.Fatalf("expected 2 modules on reassign, got %d", result.ModulesAssigned)
	}

	// no duplicate rows, all reset
	rows, err := repo.ListProgressByEmployee(ctx, empID)
	if err != nil {
		t.Fatalf("ListProgressByEmployee error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after reassign, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Status != models.StatusNotStarted || row.Completed != nil || row.Score != nil {
			t.Fatalf("expected reset row, got: %#v", row)
		}
	}
}

func TestAssign_ZeroModuleProgram(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	programID, _ := seedProgram(t, repo, "Empty", 0)
	empID := seedEmployee(t, repo, "Ada", "Lovelace", "")

	assigner := training.NewAssigner(repo, repo, repo, repo)
	result, err := assigner.Assign(ctx, empID, programID)
	if err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if result.ModulesAssigned != 0 {
		t.Fatalf("expected 0 modules assigned, got %d", result.ModulesAssigned)
	}

	rows, err := repo.ListProgressByEmployee(ctx, empID)
	if err != nil {
		t.Fatalf("ListProgressByEmployee error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestAssign_MissingOrInactiveTargets(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	programID, _ := seedProgram(t, repo, "Safety", 1)
	empID := seedEmployee(t, repo, "Ada", "Lovelace", "")

	assigner := training.NewAssigner(repo, repo, repo, repo)

	var nfe *training.NotFoundError
	if _, err := assigner.Assign(ctx, 9999, programID); !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError for missing employee, got: %v", err)
	}
	if _, err := assigner.Assign(ctx, empID, 9999); !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError for missing program, got: %v", err)
	}

	// soft-deleted targets behave like missing ones
	if err := repo.SoftDeleteProgram(ctx, programID); err != nil {
		t.Fatalf("SoftDeleteProgram error: %v", err)
	}
	if _, err := assigner.Assign(ctx, empID, programID); !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError for inactive program, got: %v", err)
	}

	if err := repo.SoftDeleteEmployee(ctx, empID); err != nil {
		t.Fatalf("SoftDeleteEmployee error: %v", err)
	}
	if _, err := assigner.Assign(ctx, empID, programID); !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError for inactive employee, got: %v", err)
	}
}
