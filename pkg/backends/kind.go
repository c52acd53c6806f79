package backends

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a supported storage engine.
type Kind string

const (
	// KindSQLite is the embedded file database.
	KindSQLite Kind = "sqlite"

	// KindDuckDB is the embedded columnar database.
	KindDuckDB Kind = "duckdb"

	// KindPostgres is a networked PostgreSQL server.
	KindPostgres Kind = "postgres"

	// KindMySQL is a networked MySQL server.
	KindMySQL Kind = "mysql"

	// KindBigQuery is the Google BigQuery warehouse.
	KindBigQuery Kind = "bigquery"
)

// ErrUnknownKind is returned when a backend name does not match any
// supported engine.
var ErrUnknownKind = errors.New("unknown backend")

// Kinds returns every supported backend kind in display order.
func Kinds() []Kind {
	return []Kind{KindSQLite, KindDuckDB, KindPostgres, KindMySQL, KindBigQuery}
}

// ParseKind resolves a backend name to its Kind. Unknown names fail fast so
// a typo never reaches a connection attempt.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) String() string {
	return string(k)
}
