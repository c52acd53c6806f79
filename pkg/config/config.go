// Package config holds the connection settings for every backend a dataset
// copy can be cached in. Settings come from built-in defaults, an optional
// YAML file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config aggregates per-backend connection settings. Only the backends
// actually requested need usable values.
type Config struct {
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	DuckDB   DuckDBConfig   `yaml:"duckdb"`
	Postgres PostgresConfig `yaml:"postgres"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	BigQuery BigQueryConfig `yaml:"bigquery"`
}

// SQLiteConfig locates the embedded database file.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"LAHMAN_SQLITE_PATH" validate:"required"`
}

// DuckDBConfig locates the embedded columnar database file.
type DuckDBConfig struct {
	Path string `yaml:"path" env:"LAHMAN_DUCKDB_PATH" validate:"required"`
}

// PostgresConfig holds PostgreSQL server settings.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"LAHMAN_PG_HOST" validate:"required"`
	Port     int    `yaml:"port" env:"LAHMAN_PG_PORT" validate:"min=1,max=65535"`
	User     string `yaml:"user" env:"LAHMAN_PG_USER" validate:"required"`
	Password string `yaml:"password" env:"LAHMAN_PG_PASSWORD"`
	Database string `yaml:"database" env:"LAHMAN_PG_DATABASE" validate:"required"`
	SSLMode  string `yaml:"sslmode" env:"LAHMAN_PG_SSLMODE" validate:"oneof=disable require verify-ca verify-full"`
}

// DSN renders a lib/pq connection string.
func (c PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Database, c.SSLMode)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// MySQLConfig holds MySQL server settings.
type MySQLConfig struct {
	Host     string `yaml:"host" env:"LAHMAN_MYSQL_HOST" validate:"required"`
	Port     int    `yaml:"port" env:"LAHMAN_MYSQL_PORT" validate:"min=1,max=65535"`
	User     string `yaml:"user" env:"LAHMAN_MYSQL_USER" validate:"required"`
	Password string `yaml:"password" env:"LAHMAN_MYSQL_PASSWORD"`
	Database string `yaml:"database" env:"LAHMAN_MYSQL_DATABASE" validate:"required"`
}

// DSN renders a go-sql-driver connection string.
func (c MySQLConfig) DSN() string {
	cred := c.User
	if c.Password != "" {
		cred += ":" + c.Password
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true", cred, c.Host, c.Port, c.Database)
}

// BigQueryConfig holds warehouse settings. CredentialsFile is optional;
// when empty the client falls back to application default credentials.
type BigQueryConfig struct {
	Project         string `yaml:"project" env:"LAHMAN_BQ_PROJECT"`
	Dataset         string `yaml:"dataset" env:"LAHMAN_BQ_DATASET"`
	CredentialsFile string `yaml:"credentials_file" env:"LAHMAN_BQ_CREDENTIALS_FILE"`
}

// Default returns the configuration used when nothing else is supplied:
// embedded databases under the user cache directory, local servers with
// conventional ports, dataset name "lahman" throughout.
func Default() Config {
	dir := cacheDir()
	return Config{
		SQLite: SQLiteConfig{Path: filepath.Join(dir, "lahman.db")},
		DuckDB: DuckDBConfig{Path: filepath.Join(dir, "lahman.duckdb")},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "lahman",
			SSLMode:  "disable",
		},
		MySQL: MySQLConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Database: "lahman",
		},
		BigQuery: BigQueryConfig{Dataset: "lahman"},
	}
}

// cacheDir picks the directory for embedded database files: the user cache
// directory when available, else the OS temp directory.
func cacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "lahman")
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
