package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

func (r *Repo) CreateModule(ctx context.Context, m *models.Module) (int64, error) {
	if m == nil {
		return 0, &training.ValidationError{Msg: "module is nil"}
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return 0, &training.ValidationError{Msg: "module name is required"}
	}
	if m.DurationMinutes < 0 {
		return 0, &training.ValidationError{Msg: "duration_minutes must not be negative"}
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO training_modules (program_id, name, description, order_index, content, duration_minutes, is_required, created_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ProgramID, m.Name, nullString(m.Description), m.OrderIndex, nullString(m.Content), m.DurationMinutes, m.Required, now())
	if err != nil {
		return 0, &training.StoreError{Op: "create module", Err: err}
	}

	return res.LastInsertId()
}

func (r *Repo) GetModule(ctx context.Context, id int64) (*models.Module, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, program_id, name, description, order_index, content, duration_minutes, is_required, created_date FROM training_modules WHERE id = ?`, id)
	m, err := scanModule(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, &training.StoreError{Op: "get module", Err: err}
	}

	return m, nil
}

func (r *Repo) ListModulesByProgram(ctx context.Context, programID int64) ([]models.Module, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, program_id, name, description, order_index, content, duration_minutes, is_required, created_date FROM training_modules WHERE program_id = ? ORDER BY order_index ASC, created_date ASC, id ASC`, programID)
	if err != nil {
		return nil, &training.StoreError{Op: "list modules", Err: err}
	}
	defer rows.Close()

	var out []models.Module
	for rows.Next() {
		m, err := scanModule(rows.Scan)
		if err != nil {
			return nil, &training.StoreError{Op: "scan module", Err: err}
		}
		out = append(out, *m)
	}

	return out, rows.Err()
}

func (r *Repo) UpdateModule(ctx context.Context, m *models.Module) error {
	if m == nil {
		return &training.ValidationError{Msg: "module is nil"}
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return &training.ValidationError{Msg: "module name is required"}
	}
	if m.DurationMinutes < 0 {
		return &training.ValidationError{Msg: "duration_minutes must not be negative"}
	}

	res, err := r.conn.Exec(ctx, `UPDATE training_modules SET name = ?, description = ?, order_index = ?, content = ?, duration_minutes = ?, is_required = ? WHERE id = ?`,
		m.Name, nullString(m.Description), m.OrderIndex, nullString(m.Content), m.DurationMinutes, m.Required, m.ID)
	if err != nil {
		return &training.StoreError{Op: "update module", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "module not found"}
	}

	return nil
}

func (r *Repo) ReorderModule(ctx context.Context, id int64, orderIndex int) error {
	res, err := r.conn.Exec(ctx, `UPDATE training_modules SET order_index = ? WHERE id = ?`, orderIndex, id)
	if err != nil {
		return &training.StoreError{Op: "reorder module", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "module not found"}
	}

	return nil
}

// DeleteModule is a hard delete and does not cascade: progress rows that
// referenced the module become orphans and are skipped by aggregation.
func (r *Repo) DeleteModule(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM training_modules WHERE id = ?`, id)
	if err != nil {
		return &training.StoreError{Op: "delete module", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "module not found"}
	}

	return nil
}

func (r *Repo) ListModuleRefs(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, program_id FROM training_modules`)
	if err != nil {
		return nil, &training.StoreError{Op: "list module refs", Err: err}
	}
	defer rows.Close()

	refs := make(map[int64]int64)
	for rows.Next() {
		var id, programID int64
		if err := rows.Scan(&id, &programID); err != nil {
			return nil, &training.StoreError{Op: "scan module ref", Err: err}
		}
		refs[id] = programID
	}

	return refs, rows.Err()
}

func scanModule(scan func(dest ...any) error) (*models.Module, error) {
	var m models.Module
	var desc, content sql.NullString
	if err := scan(&m.ID, &m.ProgramID, &m.Name, &desc, &m.OrderIndex, &content, &m.DurationMinutes, &m.Required, &m.Created); err != nil {
		return nil, err
	}
	if desc.Valid {
		m.Description = desc.String
	}
	if content.Valid {
		m.Content = content.String
	}

	return &m, nil
}
