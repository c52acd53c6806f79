package backends

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/diamondstats/lahman/pkg/dataset"
)

// setupSQLite opens a SQLite backend against a temp file database.
func setupSQLite(t *testing.T) *SQLite {
	t.Helper()

	s := NewSQLite(filepath.Join(t.TempDir(), "lahman.db"))
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteLifecycle(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	// migrations ran, but bookkeeping tables stay hidden
	names, err := s.TableNames(ctx)
	if err != nil {
		t.Fatalf("table names: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("fresh database lists tables: %v", names)
	}
}

func TestSQLiteCopyFrame(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	f, err := dataset.Open("Batting")
	if err != nil {
		t.Fatalf("opening frame: %v", err)
	}
	if err := s.CreateTable(ctx, f); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := s.CopyFrame(ctx, f); err != nil {
		t.Fatalf("copy frame: %v", err)
	}

	var count int
	if err := s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM "Batting"`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != f.NumRows() {
		t.Errorf("row count = %d, want %d", count, f.NumRows())
	}

	// blank CSV cells must land as NULL, not as empty strings or zeros
	var nulls int
	if err := s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM "Batting" WHERE "IBB" IS NULL`).Scan(&nulls); err != nil {
		t.Fatalf("counting nulls: %v", err)
	}
	if nulls == 0 {
		t.Error("expected NULL IBB cells from blank CSV values")
	}

	// the composite ID index exists
	var idx string
	err = s.DB().QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_batting_ids'`).Scan(&idx)
	if err != nil {
		t.Fatalf("looking up index: %v", err)
	}

	names, err := s.TableNames(ctx)
	if err != nil {
		t.Fatalf("table names: %v", err)
	}
	if len(names) != 1 || names[0] != "Batting" {
		t.Errorf("table names = %v, want [Batting]", names)
	}
}

func TestSQLiteRecordRevision(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	rev := Revision{
		ID:             "load-001",
		DatasetVersion: dataset.Version,
		TablesCopied:   3,
		RowsCopied:     42,
		LoadedAt:       time.Now(),
	}
	if err := s.RecordRevision(ctx, rev); err != nil {
		t.Fatalf("record revision: %v", err)
	}

	var version string
	var rows int64
	err := s.DB().QueryRowContext(ctx,
		`SELECT dataset_version, rows_copied FROM dataset_revisions WHERE id = ?`, rev.ID).
		Scan(&version, &rows)
	if err != nil {
		t.Fatalf("reading revision: %v", err)
	}
	if version != dataset.Version || rows != 42 {
		t.Errorf("revision = (%s, %d), want (%s, 42)", version, rows, dataset.Version)
	}
}

func TestSQLiteReopenKeepsTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lahman.db")
	ctx := context.Background()

	s := NewSQLite(path)
	if err := s.Open(ctx); err != nil {
		t.Fatalf("first open: %v", err)
	}
	f, err := dataset.Open("Salaries")
	if err != nil {
		t.Fatalf("opening frame: %v", err)
	}
	if err := s.CreateTable(ctx, f); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := s.CopyFrame(ctx, f); err != nil {
		t.Fatalf("copy frame: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2 := NewSQLite(path)
	if err := s2.Open(ctx); err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	names, err := s2.TableNames(ctx)
	if err != nil {
		t.Fatalf("table names: %v", err)
	}
	if len(names) != 1 || names[0] != "Salaries" {
		t.Errorf("table names after reopen = %v, want [Salaries]", names)
	}
}
