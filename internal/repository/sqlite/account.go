package sqlite

import (
	"context"
	"database/sql"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

func (r *Repo) CreateAccount(ctx context.Context, a *models.Account) (int64, error) {
	if a == nil {
		return 0, &training.ValidationError{Msg: "account is nil"}
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO accounts (name, email, password_hash, created) VALUES (?, ?, ?, ?)`, a.Name, a.Email, a.PasswordHash, now())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &training.ConflictError{Msg: "account email already in use"}
		}

		return 0, &training.StoreError{Op: "create account", Err: err}
	}

	return res.LastInsertId()
}

func (r *Repo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password_hash, created FROM accounts WHERE email = ?`, email)
	var a models.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, &training.StoreError{Op: "get account by email", Err: err}
	}

	return &a, nil
}
