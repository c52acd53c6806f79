package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// Version identifies the bundled snapshot of the Lahman database.
const Version = "2023.1"

// labelsTable documents the other frames and is never copied to a backend.
const labelsTable = "Labels"

// ColumnKind classifies the values held by a frame column.
type ColumnKind int

const (
	// Integer columns hold whole numbers (counts, years, IDs).
	Integer ColumnKind = iota

	// Float columns hold fractional numbers (averages, percentages).
	Float

	// Text columns hold everything else.
	Text
)

// String returns the lower-case name of the kind.
func (k ColumnKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return "text"
	}
}

// Column describes a single frame column.
type Column struct {
	Name string
	Kind ColumnKind
}

// Frame is one table of the bundled dataset.
type Frame struct {
	Name    string
	Columns []Column

	// raw CSV cells, one slice per record; blank cells are NULL
	rows [][]string
}

// NumRows returns the number of data rows in the frame.
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// Row returns row i converted to typed values suitable for database
// parameters: int64, float64, string, or nil for blank cells.
func (f *Frame) Row(i int) []any {
	raw := f.rows[i]
	out := make([]any, len(f.Columns))
	for j, col := range f.Columns {
		cell := raw[j]
		if cell == "" {
			continue
		}
		switch col.Kind {
		case Integer:
			v, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				out[j] = cell
				continue
			}
			out[j] = v
		case Float:
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				out[j] = cell
				continue
			}
			out[j] = v
		default:
			out[j] = cell
		}
	}
	return out
}

// IndexColumns returns the names of the columns ending in "ID", in column
// order. Backends build one composite index over them per table.
func (f *Frame) IndexColumns() []string {
	var cols []string
	for _, c := range f.Columns {
		if strings.HasSuffix(c.Name, "ID") {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// WriteCSV writes the frame as CSV, header row first. Blank cells stay
// blank, which load tools read back as NULL for numeric columns.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range f.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// inferKind picks the narrowest kind that fits every non-blank cell of a
// column: Integer, then Float, then Text.
func inferKind(cells []string) ColumnKind {
	kind := Integer
	seen := false
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		seen = true
		if kind == Integer {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = Float
		}
		if kind == Float {
			if _, err := strconv.ParseFloat(cell, 64); err == nil {
				continue
			}
			kind = Text
		}
		if kind == Text {
			return Text
		}
	}
	if !seen {
		return Text
	}
	return kind
}
