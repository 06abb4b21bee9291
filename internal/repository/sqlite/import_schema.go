package sqlite

import (
	"context"
	"database/sql"

	"github.com/garnizeh/trainhub/internal/training"
	"github.com/garnizeh/trainhub/pkg/models"
)

// CreateSchema inserts or updates an import schema by version.
func (r *Repo) CreateSchema(ctx context.Context, version, description, schemaJSON string) (int64, error) {
	res, err := r.conn.Exec(ctx, `INSERT INTO import_schemas (version, description, schema_json, created, updated) VALUES (?, ?, ?, ?, ?) ON CONFLICT(version) DO UPDATE SET description=excluded.description, schema_json=excluded.schema_json, updated=excluded.updated`, version, description, schemaJSON, now(), now())
	if err != nil {
		return 0, &training.StoreError{Op: "create import schema", Err: err}
	}
	return res.LastInsertId()
}

func (r *Repo) GetSchemaByVersion(ctx context.Context, version string) (*models.ImportSchema, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, version, description, schema_json, created, updated FROM import_schemas WHERE version = ?`, version)
	var s models.ImportSchema
	var desc sql.NullString
	if err := row.Scan(&s.ID, &s.Version, &desc, &s.SchemaJSON, &s.Created, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &training.StoreError{Op: "get import schema", Err: err}
	}
	if desc.Valid {
		s.Description = desc.String
	}
	return &s, nil
}

func (r *Repo) ListSchemas(ctx context.Context) ([]models.ImportSchema, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, version, description, schema_json, created, updated FROM import_schemas ORDER BY version`)
	if err != nil {
		return nil, &training.StoreError{Op: "list import schemas", Err: err}
	}
	defer rows.Close()

	var out []models.ImportSchema
	for rows.Next() {
		var s models.ImportSchema
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Version, &desc, &s.SchemaJSON, &s.Created, &s.Updated); err != nil {
			return nil, &training.StoreError{Op: "scan import schema", Err: err}
		}
		if desc.Valid {
			s.Description = desc.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteSchema(ctx context.Context, version string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM import_schemas WHERE version = ?`, version)
	if err != nil {
		return &training.StoreError{Op: "delete import schema", Err: err}
	}
	return nil
}
