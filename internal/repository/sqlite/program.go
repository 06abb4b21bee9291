package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

func (r *Repo) CreateProgram(ctx context.Context, p *models.Program) (int64, error) {
	if p == nil {
		return 0, &training.ValidationError{Msg: "program is nil"}
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return 0, &training.ValidationError{Msg: "program name is required"}
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO training_programs (name, description, created_date, updated_date, is_active) VALUES (?, ?, ?, ?, 1)`, p.Name, nullString(p.Description), ts, ts)
	if err != nil {
		return 0, &training.StoreError{Op: "create program", Err: err}
	}

	return res.LastInsertId()
}

// GetProgram returns the program regardless of its active flag; callers that
// only want live programs check Active themselves. Soft-deleted programs stay
// resolvable because progress rows keep referencing them.
func (r *Repo) GetProgram(ctx context.Context, id int64) (*models.Program, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, description, created_date, updated_date, is_active FROM training_programs WHERE id = ?`, id)
	var p models.Program
	var desc sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.Created, &p.Updated, &p.Active); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, &training.StoreError{Op: "get program", Err: err}
	}
	if desc.Valid {
		p.Description = desc.String
	}

	return &p, nil
}

func (r *Repo) ListPrograms(ctx context.Context) ([]models.Program, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT p.id, p.name, p.description, p.created_date, p.updated_date, p.is_active, COUNT(m.id) AS module_count
		FROM training_programs p
		LEFT JOIN training_modules m ON m.program_id = p.id
		WHERE p.is_active = 1
		GROUP BY p.id
		ORDER BY p.created_date DESC`)
	if err != nil {
		return nil, &training.StoreError{Op: "list programs", Err: err}
	}
	defer rows.Close()

	var out []models.Program
	for rows.Next() {
		var p models.Program
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Created, &p.Updated, &p.Active, &p.ModuleCount); err != nil {
			return nil, &training.StoreError{Op: "scan program", Err: err}
		}
		if desc.Valid {
			p.Description = desc.String
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *Repo) UpdateProgram(ctx context.Context, p *models.Program) error {
	if p == nil {
		return &training.ValidationError{Msg: "program is nil"}
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return &training.ValidationError{Msg: "program name is required"}
	}

	res, err := r.conn.Exec(ctx, `UPDATE training_programs SET name = ?, description = ?, updated_date = ? WHERE id = ?`, p.Name, nullString(p.Description), now(), p.ID)
	if err != nil {
		return &training.StoreError{Op: "update program", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "program not found"}
	}

	return nil
}

// SoftDeleteProgram flips is_active; the row itself stays because modules and
// progress rows may still reference it.
func (r *Repo) SoftDeleteProgram(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `UPDATE training_programs SET is_active = 0, updated_date = ? WHERE id = ?`, now(), id)
	if err != nil {
		return &training.StoreError{Op: "soft delete program", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "program not found"}
	}

	return nil
}

// nullString stores empty strings as NULL so optional text columns stay
// distinguishable from deliberate empty values.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
