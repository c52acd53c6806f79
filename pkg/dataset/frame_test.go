package dataset

import (
	"errors"
	"sort"
	"testing"
)

// TestTablesExcludesLabels verifies the required table set omits the
// documentation frame.
func TestTablesExcludesLabels(t *testing.T) {
	tables := Tables()
	if len(tables) == 0 {
		t.Fatal("no tables in bundled dataset")
	}
	if !sort.StringsAreSorted(tables) {
		t.Errorf("tables not sorted: %v", tables)
	}
	for _, name := range tables {
		if name == "Labels" {
			t.Error("Labels listed as a required table")
		}
	}
}

// TestOpenKnownFrames verifies every required table opens and has data.
func TestOpenKnownFrames(t *testing.T) {
	for _, name := range Tables() {
		f, err := Open(name)
		if err != nil {
			t.Fatalf("Open(%q): %v", name, err)
		}
		if f.Name != name {
			t.Errorf("frame name = %q, want %q", f.Name, name)
		}
		if f.NumRows() == 0 {
			t.Errorf("frame %q has no rows", name)
		}
		if len(f.Columns) == 0 {
			t.Errorf("frame %q has no columns", name)
		}
	}
}

func TestOpenUnknownTable(t *testing.T) {
	_, err := Open("Nonsense")
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("Open(Nonsense) error = %v, want ErrUnknownTable", err)
	}
}

func TestLabelsFrame(t *testing.T) {
	f, err := Labels()
	if err != nil {
		t.Fatalf("Labels(): %v", err)
	}
	if f.NumRows() == 0 {
		t.Error("Labels frame has no rows")
	}
}

// TestColumnKindInference checks type inference on known Batting columns.
func TestColumnKindInference(t *testing.T) {
	f, err := Open("Batting")
	if err != nil {
		t.Fatalf("Open(Batting): %v", err)
	}

	want := map[string]ColumnKind{
		"playerID": Text,
		"yearID":   Integer,
		"G":        Integer,
		"HR":       Integer,
	}
	kinds := make(map[string]ColumnKind, len(f.Columns))
	for _, c := range f.Columns {
		kinds[c.Name] = c.Kind
	}
	for name, kind := range want {
		got, ok := kinds[name]
		if !ok {
			t.Errorf("Batting missing column %q", name)
			continue
		}
		if got != kind {
			t.Errorf("Batting.%s kind = %s, want %s", name, got, kind)
		}
	}

	tf, err := Open("Teams")
	if err != nil {
		t.Fatalf("Open(Teams): %v", err)
	}
	for _, c := range tf.Columns {
		if c.Name == "ERA" && c.Kind != Float {
			t.Errorf("Teams.ERA kind = %s, want float", c.Kind)
		}
	}
}

// TestIndexColumns verifies the ID-suffix rule.
func TestIndexColumns(t *testing.T) {
	tests := []struct {
		table string
		want  []string
	}{
		{"Batting", []string{"playerID", "yearID", "teamID", "lgID"}},
		{"Salaries", []string{"yearID", "teamID", "lgID", "playerID"}},
		{"AwardsPlayers", []string{"playerID", "awardID", "yearID", "lgID"}},
	}
	for _, tt := range tests {
		f, err := Open(tt.table)
		if err != nil {
			t.Fatalf("Open(%q): %v", tt.table, err)
		}
		got := f.IndexColumns()
		if len(got) != len(tt.want) {
			t.Errorf("%s index columns = %v, want %v", tt.table, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s index columns = %v, want %v", tt.table, got, tt.want)
				break
			}
		}
	}
}

// TestRowTypedValues checks blank cells become nil and numbers are typed.
func TestRowTypedValues(t *testing.T) {
	f, err := Open("Batting")
	if err != nil {
		t.Fatalf("Open(Batting): %v", err)
	}

	colIndex := make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		colIndex[c.Name] = i
	}

	for i := 0; i < f.NumRows(); i++ {
		row := f.Row(i)
		if _, ok := row[colIndex["playerID"]].(string); !ok {
			t.Fatalf("row %d playerID not a string: %T", i, row[colIndex["playerID"]])
		}
		switch v := row[colIndex["HR"]].(type) {
		case int64, nil:
		default:
			t.Fatalf("row %d HR not int64 or nil: %T", i, v)
		}
	}
}
