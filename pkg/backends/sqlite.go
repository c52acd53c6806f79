package backends

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite is the embedded file database backend. Besides the dataset tables
// it keeps a dataset_revisions history of population runs, managed through
// versioned migrations.
type SQLite struct {
	sqlBackend
	path string
}

// NewSQLite creates a SQLite backend at the given file path. The special
// path ":memory:" opens an in-memory database.
func NewSQLite(path string) *SQLite {
	return &SQLite{
		sqlBackend: sqlBackend{
			kind:    KindSQLite,
			driver:  "sqlite",
			dsn:     path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
			dialect: sqliteDialect{},
		},
		path: path,
	}
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Open(ctx context.Context) error {
	if s.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	if err := s.sqlBackend.Open(ctx); err != nil {
		return err
	}
	if s.path == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		s.db.SetMaxOpenConns(1)
	}
	if err := s.migrate(); err != nil {
		_ = s.Close()
		return err
	}
	return nil
}

func (s *SQLite) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// TableNames lists dataset tables, hiding the migration bookkeeping and
// revision history tables.
func (s *SQLite) TableNames(ctx context.Context) ([]string, error) {
	names, err := s.sqlBackend.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if n == "schema_migrations" || n == "dataset_revisions" {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// RecordRevision appends one population run to the revision history.
func (s *SQLite) RecordRevision(ctx context.Context, rev Revision) error {
	const q = `INSERT INTO dataset_revisions (id, dataset_version, tables_copied, rows_copied, loaded_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, rev.ID, rev.DatasetVersion, rev.TablesCopied, rev.RowsCopied, rev.LoadedAt.UTC()); err != nil {
		return fmt.Errorf("recording revision: %w", err)
	}
	return nil
}
