// Package backends implements the storage engines a dataset copy can live
// in: embedded file databases (SQLite, DuckDB), networked relational servers
// (PostgreSQL, MySQL), and the BigQuery warehouse. The four SQL engines share
// one database/sql core parameterized by a dialect; BigQuery uses the cloud
// client's load-job API.
package backends
