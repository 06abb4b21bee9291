package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

func (r *Repo) CreateEmployee(ctx context.Context, e *models.Employee) (int64, error) {
	if e == nil {
		return 0, &training.ValidationError{Msg: "employee is nil"}
	}
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	if e.FirstName == "" || e.LastName == "" {
		return 0, &training.ValidationError{Msg: "first_name and last_name are required"}
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO employees (first_name, last_name, email, hire_date, department, position, is_active, created_date) VALUES (?, ?, ?, ?, ?, ?, 1, ?)`,
		e.FirstName, e.LastName, nullString(e.Email), nullString(e.HireDate), nullString(e.Department), nullString(e.Position), now())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &training.ConflictError{Msg: "email already in use"}
		}

		return 0, &training.StoreError{Op: "create employee", Err: err}
	}

	return res.LastInsertId()
}

func (r *Repo) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, first_name, last_name, email, hire_date, department, position, is_active, created_date FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, &training.StoreError{Op: "get employee", Err: err}
	}

	return e, nil
}

func (r *Repo) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, first_name, last_name, email, hire_date, department, position, is_active, created_date FROM employees WHERE email = ? AND is_active = 1`, email)
	e, err := scanEmployee(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, &training.StoreError{Op: "get employee by email", Err: err}
	}

	return e, nil
}

func (r *Repo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, first_name, last_name, email, hire_date, department, position, is_active, created_date FROM employees WHERE is_active = 1 ORDER BY last_name ASC, first_name ASC`)
	if err != nil {
		return nil, &training.StoreError{Op: "list employees", Err: err}
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, &training.StoreError{Op: "scan employee", Err: err}
		}
		out = append(out, *e)
	}

	return out, rows.Err()
}

func (r *Repo) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	if e == nil {
		return &training.ValidationError{Msg: "employee is nil"}
	}
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	if e.FirstName == "" || e.LastName == "" {
		return &training.ValidationError{Msg: "first_name and last_name are required"}
	}

	res, err := r.conn.Exec(ctx, `UPDATE employees SET first_name = ?, last_name = ?, email = ?, hire_date = ?, department = ?, position = ? WHERE id = ?`,
		e.FirstName, e.LastName, nullString(e.Email), nullString(e.HireDate), nullString(e.Department), nullString(e.Position), e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &training.ConflictError{Msg: "email already in use"}
		}

		return &training.StoreError{Op: "update employee", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "employee not found"}
	}

	return nil
}

// SoftDeleteEmployee deactivates the employee. Historical progress rows stay
// untouched.
func (r *Repo) SoftDeleteEmployee(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `UPDATE employees SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return &training.StoreError{Op: "soft delete employee", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &training.NotFoundError{Msg: "employee not found"}
	}

	return nil
}

func scanEmployee(scan func(dest ...any) error) (*models.Employee, error) {
	var e models.Employee
	var email, hireDate, dept, pos sql.NullString
	if err := scan(&e.ID, &e.FirstName, &e.LastName, &email, &hireDate, &dept, &pos, &e.Active, &e.Created); err != nil {
		return nil, err
	}
	if email.Valid {
		e.Email = email.String
	}
	if hireDate.Valid {
		e.HireDate = hireDate.String
	}
	if dept.Valid {
		e.Department = dept.String
	}
	if pos.Valid {
		e.Position = pos.String
	}

	return &e, nil
}
