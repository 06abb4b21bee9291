package training_test

import (
	"context"
	"errors"
	"testing"

	sqlite "github.com/garnizeh/trainhub/internal/repository/sqlite"
	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

// setupSingleModule seeds a single-module program, assigns it to one employee
// and returns the (employee, module) pair under test.
func setupSingleModule(t *testing.T) (*training.Mutator, int64, int64, *sqlite.Repo) {
	t.Helper()
	ctx := context.Background()

	repo := setupRepo(t)
	programID, moduleIDs := seedProgram(t, repo, "Safety", 1)
	empID := seedEmployee(t, repo, "Ada", "Lovelace", "")

	assigner := training.NewAssigner(repo, repo, repo, repo)
	if _, err := assigner.Assign(ctx, empID, programID); err != nil {
		t.Fatalf("Assign error: %v", err)
	}

	return training.NewMutator(repo, true), empID, moduleIDs[0], repo
}

func TestSetStatus_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mutator, empID, moduleID, _ := setupSingleModule(t)

	row, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusInProgress, nil)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if row.Status != models.StatusInProgress {
		t.Fatalf("expected in_progress, got %q", row.Status)
	}
	if row.Started == nil {
		t.Fatalf("expected started_date to be set")
	}
	if row.Completed != nil || row.Score != nil {
		t.Fatalf("expected no completion data yet: %#v", row)
	}

	score := 87.5
	row, err = mutator.SetStatus(ctx, empID, moduleID, models.StatusCompleted, &score)
	if err != nil {
		t.Fatalf("SetStatus to completed error: %v", err)
	}
	if row.Status != models.StatusCompleted {
		t.Fatalf("expected completed, got %q", row.Status)
	}
	if row.Completed == nil {
		t.Fatalf("expected completed_date to be set")
	}
	if row.Score == nil || *row.Score != score {
		t.Fatalf("expected score %v, got %v", score, row.Score)
	}
}

func TestSetStatus_StartedDateSetOnce(t *testing.T) {
	ctx := context.Background()
	mutator, empID, moduleID, _ := setupSingleModule(t)

	first, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusInProgress, nil)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}

	// bounce through completed and back
	if _, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusCompleted, nil); err != nil {
		t.Fatalf("SetStatus to completed error: %v", err)
	}
	again, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusInProgress, nil)
	if err != nil {
		t.Fatalf("SetStatus back to in_progress error: %v", err)
	}

	if *again.Started != *first.Started {
		t.Fatalf("started_date changed from %d to %d", *first.Started, *again.Started)
	}
}

func TestSetStatus_CompletedDateOverwritten(t *testing.T) {
	ctx := context.Background()
	mutator, empID, moduleID, _ := setupSingleModule(t)

	first, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusCompleted, nil)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}

	if _, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusInProgress, nil); err != nil {
		t.Fatalf("SetStatus regression error: %v", err)
	}
	second, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusCompleted, nil)
	if err != nil {
		t.Fatalf("second completion error: %v", err)
	}

	if second.Completed == nil {
		t.Fatalf("expected completed_date after second completion")
	}
	if *second.Completed < *first.Completed {
		t.Fatalf("expected completed_date to move forward, got %d then %d", *first.Completed, *second.Completed)
	}
}

func TestSetStatus_ScoreRules(t *testing.T) {
	ctx := context.Background()
	mutator, empID, moduleID, _ := setupSingleModule(t)

	// score on a non-completed transition is ignored
	score := 50.0
	row, err := mutator.SetStatus(ctx, empID, moduleID, models.StatusInProgress, &score)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if row.Score != nil {
		t.Fatalf("expected score ignored outside completion, got %v", row.Score)
	}

	// record a score on completion
	score = 91.0
	row, err = mutator.SetStatus(ctx, empID, moduleID, models.StatusCompleted, &score)
	if err != nil {
		t.Fatalf("SetStatus to completed error: %v", err)
	}
	if row.Score == nil || *row.Score != 91.0 {
		t.Fatalf("expected score 91, got %v", row.Score)
	}

	// completing again without a score keeps the recorded one
	row, err = mutator.SetStatus(ctx, empID, moduleID, models.StatusCompleted, nil)
	if err != nil {
		t.Fatalf("second completion error: %v", err)
	}
	if row.Score == nil || *row.Score != 91.0 {
		t.Fatalf("expected nil score to keep 91, got %v", row.Score)
	}
}

func TestSetStatus_RegressionToggle(t *testing.T) {
	ctx := context.Background()
	_, empID, moduleID, repo := setupSingleModule(t)

	strict := training.NewMutator(repo, false)
	if _, err := strict.SetStatus(ctx, empID, moduleID, models.StatusCompleted, nil); err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}

	var verr *training.ValidationError
	if _, err := strict.SetStatus(ctx, empID, moduleID, models.StatusNotStarted, nil); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for backward transition, got: %v", err)
	}

	// same status is not a regression
	if _, err := strict.SetStatus(ctx, empID, moduleID, models.StatusCompleted, nil); err != nil {
		t.Fatalf("expected same-status update to pass, got: %v", err)
	}

	lenient := training.NewMutator(repo, true)
	row, err := lenient.SetStatus(ctx, empID, moduleID, models.StatusNotStarted, nil)
	if err != nil {
		t.Fatalf("expected regression allowed, got: %v", err)
	}
	if row.Status != models.StatusNotStarted {
		t.Fatalf("expected not_started, got %q", row.Status)
	}
}

func TestSetStatus_Errors(t *testing.T) {
	ctx := context.Background()
	mutator, empID, moduleID, _ := setupSingleModule(t)

	var verr *training.ValidationError
	if _, err := mutator.SetStatus(ctx, empID, moduleID, models.Status("bogus"), nil); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for bogus status, got: %v", err)
	}

	var nfe *training.NotFoundError
	if _, err := mutator.SetStatus(ctx, empID, 9999, models.StatusInProgress, nil); !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError for unassigned module, got: %v", err)
	}
}
