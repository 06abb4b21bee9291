package sqlite

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/garnizeh/trainhub/internal/db"
	"github.com/garnizeh/trainhub/pkg/repository"
)

// Repo implements the repository interfaces using the internal DB wrapper.
type Repo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure Repo implements the public interfaces.
var _ repository.ProgramRepo = (*Repo)(nil)
var _ repository.ModuleRepo = (*Repo)(nil)
var _ repository.EmployeeRepo = (*Repo)(nil)
var _ repository.ProgressRepo = (*Repo)(nil)
var _ repository.AccountRepo = (*Repo)(nil)
var _ repository.SchemaRepo = (*Repo)(nil)

func New(conn *db.DB, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return &Repo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// isUniqueViolation matches the driver's UNIQUE constraint error text; the
// modernc driver exposes no typed constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
