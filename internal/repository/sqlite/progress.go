package sqlite

import (
	"context"
	"database/sql"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

// upsertProgressSQL fully replaces the row keyed on (employee_id, module_id):
// reassignment resets status, timestamps, score and attempts to a fresh
// not_started record.
const upsertProgressSQL = `
INSERT INTO training_progress (employee_id, module_id, program_id, status, started_date, completed_date, score, attempts)
VALUES (?, ?, ?, ?, ?, NULL, NULL, 0)
ON CONFLICT (employee_id, module_id) DO UPDATE SET
	program_id = excluded.program_id,
	status = excluded.status,
	started_date = excluded.started_date,
	completed_date = NULL,
	score = NULL,
	attempts = 0`

func (r *Repo) UpsertProgress(ctx context.Context, p *models.Progress) (int64, error) {
	if p == nil {
		return 0, &training.ValidationError{Msg: "progress is nil"}
	}
	if !p.Status.Valid() {
		return 0, &training.ValidationError{Msg: "invalid status: " + string(p.Status)}
	}

	res, err := r.conn.Exec(ctx, upsertProgressSQL, p.EmployeeID, p.ModuleID, p.ProgramID, p.Status, nullInt64(p.Started))
	if err != nil {
		return 0, &training.StoreError{Op: "upsert progress", Err: err}
	}

	return res.LastInsertId()
}

// AssignModules writes one fresh not_started row per module. The upserts run
// inside a single transaction so a failure leaves no partial reset behind.
func (r *Repo) AssignModules(ctx context.Context, employeeID, programID int64, moduleIDs []int64, startedAt int64) error {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return &training.StoreError{Op: "begin assignment tx", Err: err}
	}
	for _, moduleID := range moduleIDs {
		if _, err := tx.ExecContext(ctx, upsertProgressSQL, employeeID, moduleID, programID, models.StatusNotStarted, startedAt); err != nil {
			_ = tx.Rollback()
			return &training.StoreError{Op: "assign module", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &training.StoreError{Op: "commit assignment tx", Err: err}
	}

	return nil
}

func (r *Repo) GetProgress(ctx context.Context, employeeID, moduleID int64) (*models.Progress, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, employee_id, module_id, program_id, status, started_date, completed_date, score, attempts FROM training_progress WHERE employee_id = ? AND module_id = ?`, employeeID, moduleID)
	p, err := scanProgress(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, &training.StoreError{Op: "get progress", Err: err}
	}

	return p, nil
}

// UpdateProgressStatus is a partial single-statement update; COALESCE keeps
// stored timestamps and score when the caller passes nil.
func (r *Repo) UpdateProgressStatus(ctx context.Context, employeeID, moduleID int64, status models.Status, started, completed *int64, score *float64) error {
	if !status.Valid() {
		return &training.ValidationError{Msg: "invalid status: " + string(status)}
	}

	res, err := r.conn.Exec(ctx, `
		UPDATE training_progress SET
			status = ?,
			started_date = COALESCE(?, started_date),
			completed_date = COALESCE(?, completed_date),
			score = COALESCE(?, score)
		WHERE employee_id = ? AND module_id = ?`,
		status, nullInt64(started), nullInt64(completed), nullFloat64(score), employeeID, moduleID)
	if err != nil {
		return &training.StoreError{Op: "update progress status", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "progress row not found"}
	}

	return nil
}

func (r *Repo) ListProgressByEmployee(ctx context.Context, employeeID int64) ([]models.Progress, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, employee_id, module_id, program_id, status, started_date, completed_date, score, attempts FROM training_progress WHERE employee_id = ? ORDER BY id ASC`, employeeID)
	if err != nil {
		return nil, &training.StoreError{Op: "list progress by employee", Err: err}
	}

	return collectProgress(rows)
}

func (r *Repo) ListAllProgress(ctx context.Context) ([]models.Progress, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, employee_id, module_id, program_id, status, started_date, completed_date, score, attempts FROM training_progress ORDER BY id ASC`)
	if err != nil {
		return nil, &training.StoreError{Op: "list all progress", Err: err}
	}

	return collectProgress(rows)
}

func collectProgress(rows *sql.Rows) ([]models.Progress, error) {
	defer rows.Close()

	var out []models.Progress
	for rows.Next() {
		p, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, &training.StoreError{Op: "scan progress", Err: err}
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func scanProgress(scan func(dest ...any) error) (*models.Progress, error) {
	var p models.Progress
	var started, completed sql.NullInt64
	var score sql.NullFloat64
	if err := scan(&p.ID, &p.EmployeeID, &p.ModuleID, &p.ProgramID, &p.Status, &started, &completed, &score, &p.Attempts); err != nil {
		return nil, err
	}
	if started.Valid {
		v := started.Int64
		p.Started = &v
	}
	if completed.Valid {
		v := completed.Int64
		p.Completed = &v
	}
	if score.Valid {
		v := score.Float64
		p.Score = &v
	}

	return &p, nil
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat64(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
