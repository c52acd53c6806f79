package backends

import (
	// PostgreSQL driver
	_ "github.com/lib/pq"
)

// Postgres is the networked PostgreSQL backend.
type Postgres struct {
	sqlBackend
}

// NewPostgres creates a PostgreSQL backend from a lib/pq connection string.
func NewPostgres(dsn string) *Postgres {
	return &Postgres{
		sqlBackend: sqlBackend{
			kind:    KindPostgres,
			driver:  "postgres",
			dsn:     dsn,
			dialect: postgresDialect{},
		},
	}
}
