package backends

import (
	"fmt"
	"strings"

	"github.com/diamondstats/lahman/pkg/dataset"
)

// dialect captures the SQL differences between the database/sql engines:
// identifier quoting, parameter placeholders, column types, and how to list
// existing tables.
type dialect interface {
	quote(ident string) string
	placeholder(n int) string // n is 1-based
	columnType(k dataset.ColumnKind) string
	tableNamesQuery() string
}

// ansiDialect covers engines with double-quoted identifiers and ?
// placeholders.
type ansiDialect struct{}

func (ansiDialect) quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (ansiDialect) placeholder(int) string { return "?" }

type sqliteDialect struct{ ansiDialect }

func (sqliteDialect) columnType(k dataset.ColumnKind) string {
	switch k {
	case dataset.Integer:
		return "INTEGER"
	case dataset.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (sqliteDialect) tableNamesQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
}

type duckdbDialect struct{ ansiDialect }

func (duckdbDialect) columnType(k dataset.ColumnKind) string {
	switch k {
	case dataset.Integer:
		return "BIGINT"
	case dataset.Float:
		return "DOUBLE"
	default:
		return "VARCHAR"
	}
}

func (duckdbDialect) tableNamesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = 'main'`
}

type postgresDialect struct{ ansiDialect }

func (postgresDialect) placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) columnType(k dataset.ColumnKind) string {
	switch k {
	case dataset.Integer:
		return "bigint"
	case dataset.Float:
		return "double precision"
	default:
		return "text"
	}
}

func (postgresDialect) tableNamesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_type = 'BASE TABLE'`
}

type mysqlDialect struct{}

func (mysqlDialect) quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlDialect) placeholder(int) string { return "?" }

func (mysqlDialect) columnType(k dataset.ColumnKind) string {
	switch k {
	case dataset.Integer:
		return "BIGINT"
	case dataset.Float:
		return "DOUBLE"
	default:
		return "VARCHAR(255)"
	}
}

func (mysqlDialect) tableNamesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE()`
}

// createTableSQL renders CREATE TABLE for a frame in the given dialect.
func createTableSQL(d dialect, f *dataset.Frame) string {
	cols := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		cols[i] = d.quote(c.Name) + " " + d.columnType(c.Kind)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.quote(f.Name), strings.Join(cols, ", "))
}

// insertSQL renders a single-row INSERT for a frame in the given dialect.
func insertSQL(d dialect, f *dataset.Frame) string {
	cols := make([]string, len(f.Columns))
	params := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		cols[i] = d.quote(c.Name)
		params[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.quote(f.Name), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// createIndexSQL renders the composite index over the frame's ID-suffixed
// columns, or "" when the frame has none.
func createIndexSQL(d dialect, f *dataset.Frame) string {
	idx := f.IndexColumns()
	if len(idx) == 0 {
		return ""
	}
	quoted := make([]string, len(idx))
	for i, c := range idx {
		quoted[i] = d.quote(c)
	}
	name := "idx_" + strings.ToLower(f.Name) + "_ids"
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
		d.quote(name), d.quote(f.Name), strings.Join(quoted, ", "))
}
