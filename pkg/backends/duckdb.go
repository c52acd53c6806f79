package backends

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	// DuckDB driver
	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDB is the embedded columnar database backend.
type DuckDB struct {
	sqlBackend
	path string
}

// NewDuckDB creates a DuckDB backend at the given file path. An empty path
// opens an in-memory database.
func NewDuckDB(path string) *DuckDB {
	return &DuckDB{
		sqlBackend: sqlBackend{
			kind:    KindDuckDB,
			driver:  "duckdb",
			dsn:     path,
			dialect: duckdbDialect{},
		},
		path: path,
	}
}

// Path returns the database file location; empty for in-memory.
func (d *DuckDB) Path() string {
	return d.path
}

func (d *DuckDB) Open(ctx context.Context) error {
	if d.path != "" {
		if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	return d.sqlBackend.Open(ctx)
}
