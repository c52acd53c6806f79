package dataset

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.csv
var dataFS embed.FS

// ErrUnknownTable is returned by Open for a name not present in the bundle.
var ErrUnknownTable = errors.New("dataset: unknown table")

var (
	loadOnce sync.Once
	frames   map[string]*Frame
	loadErr  error
)

// load parses every embedded CSV exactly once.
func load() error {
	loadOnce.Do(func() {
		entries, err := dataFS.ReadDir("data")
		if err != nil {
			loadErr = fmt.Errorf("reading embedded dataset: %w", err)
			return
		}
		frames = make(map[string]*Frame, len(entries))
		for _, e := range entries {
			name := strings.TrimSuffix(e.Name(), ".csv")
			f, err := parseFrame(name, "data/"+e.Name())
			if err != nil {
				loadErr = err
				return
			}
			frames[name] = f
		}
	})
	return loadErr
}

func parseFrame(name, path string) (*Frame, error) {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r := csv.NewReader(strings.NewReader(string(raw)))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing %s: empty file", path)
	}

	header := records[0]
	rows := records[1:]

	cols := make([]Column, len(header))
	cells := make([]string, len(rows))
	for j, colName := range header {
		for i, row := range rows {
			cells[i] = row[j]
		}
		cols[j] = Column{Name: colName, Kind: inferKind(cells)}
	}

	return &Frame{Name: name, Columns: cols, rows: rows}, nil
}

// Tables returns the sorted names of the required tables: every bundled
// frame except Labels.
func Tables() []string {
	if err := load(); err != nil {
		return nil
	}
	names := make([]string, 0, len(frames))
	for name := range frames {
		if name == labelsTable {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns the frame with the given name.
func Open(name string) (*Frame, error) {
	if err := load(); err != nil {
		return nil, err
	}
	f, ok := frames[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return f, nil
}

// Labels returns the documentation frame describing the other frames.
func Labels() (*Frame, error) {
	return Open(labelsTable)
}
