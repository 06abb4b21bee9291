package training

import (
	"context"
	"time"

	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
)

// Mutator transitions exactly one (employee, module) progress row through its
// status lifecycle. The row must already exist (created by the Assigner); the
// mutator never creates one.
type Mutator struct {
	progress repository.ProgressRepo

	// AllowRegression permits backward transitions (e.g. completed back to
	// not_started) as corrections. When false a backward move fails with a
	// ValidationError.
	AllowRegression bool
}

func NewMutator(progress repository.ProgressRepo, allowRegression bool) *Mutator {
	return &Mutator{progress: progress, AllowRegression: allowRegression}
}

var statusRank = map[models.Status]int{
	models.StatusNotStarted: 0,
	models.StatusInProgress: 1,
	models.StatusCompleted:  2,
}

// SetStatus applies the timestamp and score rules:
//   - the first transition into in_progress or completed records started_date
//     once; re-entering in_progress later never overwrites it
//   - every transition to completed overwrites completed_date
//   - a score is recorded only on completed transitions, and a nil score
//     never clears a previously recorded one
func (m *Mutator) SetStatus(ctx context.Context, employeeID, moduleID int64, status models.Status, score *float64) (*models.Progress, error) {
	if !status.Valid() {
		return nil, &ValidationError{Msg: "invalid status: " + string(status)}
	}

	row, err := m.progress.GetProgress(ctx, employeeID, moduleID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &NotFoundError{Msg: "progress row not found; assign the program first"}
	}

	if !m.AllowRegression && statusRank[status] < statusRank[row.Status] {
		return nil, &ValidationError{Msg: "backward status transition not allowed"}
	}

	nowMillis := time.Now().UTC().UnixMilli()

	var started *int64
	if status != models.StatusNotStarted && row.Started == nil {
		started = &nowMillis
	}

	var completed *int64
	if status == models.StatusCompleted {
		completed = &nowMillis
	}

	if status != models.StatusCompleted {
		score = nil
	}

	if err := m.progress.UpdateProgressStatus(ctx, employeeID, moduleID, status, started, completed, score); err != nil {
		return nil, err
	}

	return m.progress.GetProgress(ctx, employeeID, moduleID)
}
