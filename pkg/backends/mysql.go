package backends

import (
	// MySQL driver
	_ "github.com/go-sql-driver/mysql"
)

// MySQL is the networked MySQL backend.
type MySQL struct {
	sqlBackend
}

// NewMySQL creates a MySQL backend from a go-sql-driver DSN.
func NewMySQL(dsn string) *MySQL {
	return &MySQL{
		sqlBackend: sqlBackend{
			kind:    KindMySQL,
			driver:  "mysql",
			dsn:     dsn,
			dialect: mysqlDialect{},
		},
	}
}
