package backends

import (
	"testing"

	"github.com/diamondstats/lahman/pkg/dataset"
)

func testFrame() *dataset.Frame {
	return &dataset.Frame{
		Name: "Batting",
		Columns: []dataset.Column{
			{Name: "playerID", Kind: dataset.Text},
			{Name: "yearID", Kind: dataset.Integer},
			{Name: "ERA", Kind: dataset.Float},
		},
	}
}

func TestCreateTableSQL(t *testing.T) {
	tests := []struct {
		name string
		d    dialect
		want string
	}{
		{
			name: "sqlite",
			d:    sqliteDialect{},
			want: `CREATE TABLE IF NOT EXISTS "Batting" ("playerID" TEXT, "yearID" INTEGER, "ERA" REAL)`,
		},
		{
			name: "duckdb",
			d:    duckdbDialect{},
			want: `CREATE TABLE IF NOT EXISTS "Batting" ("playerID" VARCHAR, "yearID" BIGINT, "ERA" DOUBLE)`,
		},
		{
			name: "postgres",
			d:    postgresDialect{},
			want: `CREATE TABLE IF NOT EXISTS "Batting" ("playerID" text, "yearID" bigint, "ERA" double precision)`,
		},
		{
			name: "mysql",
			d:    mysqlDialect{},
			want: "CREATE TABLE IF NOT EXISTS `Batting` (`playerID` VARCHAR(255), `yearID` BIGINT, `ERA` DOUBLE)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createTableSQL(tt.d, testFrame()); got != tt.want {
				t.Errorf("createTableSQL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertSQL(t *testing.T) {
	tests := []struct {
		name string
		d    dialect
		want string
	}{
		{
			name: "sqlite placeholders",
			d:    sqliteDialect{},
			want: `INSERT INTO "Batting" ("playerID", "yearID", "ERA") VALUES (?, ?, ?)`,
		},
		{
			name: "postgres ordinals",
			d:    postgresDialect{},
			want: `INSERT INTO "Batting" ("playerID", "yearID", "ERA") VALUES ($1, $2, $3)`,
		},
		{
			name: "mysql backticks",
			d:    mysqlDialect{},
			want: "INSERT INTO `Batting` (`playerID`, `yearID`, `ERA`) VALUES (?, ?, ?)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := insertSQL(tt.d, testFrame()); got != tt.want {
				t.Errorf("insertSQL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateIndexSQL(t *testing.T) {
	want := `CREATE INDEX "idx_batting_ids" ON "Batting" ("playerID", "yearID")`
	if got := createIndexSQL(sqliteDialect{}, testFrame()); got != want {
		t.Errorf("createIndexSQL = %q, want %q", got, want)
	}

	noIDs := &dataset.Frame{
		Name:    "Labels",
		Columns: []dataset.Column{{Name: "label", Kind: dataset.Text}},
	}
	if got := createIndexSQL(sqliteDialect{}, noIDs); got != "" {
		t.Errorf("createIndexSQL for frame without ID columns = %q, want empty", got)
	}
}

func TestQuoteEscaping(t *testing.T) {
	if got := (ansiDialect{}).quote(`we"ird`); got != `"we""ird"` {
		t.Errorf("ansi quote = %q", got)
	}
	if got := (mysqlDialect{}).quote("we`ird"); got != "`we``ird`" {
		t.Errorf("mysql quote = %q", got)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"sqlite", KindSQLite, false},
		{"DuckDB", KindDuckDB, false},
		{" postgres ", KindPostgres, false},
		{"mysql", KindMySQL, false},
		{"bigquery", KindBigQuery, false},
		{"oracle", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
