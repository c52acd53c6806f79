package backends

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/diamondstats/lahman/pkg/dataset"
)

// sqlBackend is the shared database/sql implementation behind the SQLite,
// DuckDB, PostgreSQL, and MySQL backends.
type sqlBackend struct {
	kind    Kind
	driver  string
	dsn     string
	dialect dialect
	db      *sql.DB
}

func (b *sqlBackend) Kind() Kind {
	return b.kind
}

// DB exposes the underlying handle. Valid only after Open.
func (b *sqlBackend) DB() *sql.DB {
	return b.db
}

func (b *sqlBackend) Open(ctx context.Context) error {
	db, err := sql.Open(b.driver, b.dsn)
	if err != nil {
		return fmt.Errorf("opening %s: %w", b.kind, err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("pinging %s: %w", b.kind, err)
	}

	b.db = db
	return nil
}

func (b *sqlBackend) Ping(ctx context.Context) error {
	if b.db == nil {
		return fmt.Errorf("%s: not opened", b.kind)
	}
	return b.db.PingContext(ctx)
}

func (b *sqlBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *sqlBackend) TableNames(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, b.dialect.tableNamesQuery())
	if err != nil {
		return nil, fmt.Errorf("listing %s tables: %w", b.kind, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table names: %w", err)
	}
	return names, nil
}

func (b *sqlBackend) CreateTable(ctx context.Context, f *dataset.Frame) error {
	if _, err := b.db.ExecContext(ctx, createTableSQL(b.dialect, f)); err != nil {
		return fmt.Errorf("creating table %s on %s: %w", f.Name, b.kind, err)
	}
	return nil
}

func (b *sqlBackend) CopyFrame(ctx context.Context, f *dataset.Frame) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning %s transaction: %w", b.kind, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(b.dialect, f))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("preparing insert for %s: %w", f.Name, err)
	}

	for i := 0; i < f.NumRows(); i++ {
		if _, err := stmt.ExecContext(ctx, f.Row(i)...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("inserting row %d into %s: %w", i, f.Name, err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("closing insert statement for %s: %w", f.Name, err)
	}

	if idx := createIndexSQL(b.dialect, f); idx != "" {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("indexing %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s copy: %w", f.Name, err)
	}
	return nil
}
