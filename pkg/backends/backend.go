package backends

import (
	"context"
	"time"

	"github.com/diamondstats/lahman/pkg/dataset"
)

// Backend is a storage engine that can hold copies of dataset frames.
// Implementations are not safe for concurrent use; the cache provider
// serializes access.
type Backend interface {
	// Kind reports which engine this backend is.
	Kind() Kind

	// Open establishes the connection. It must be called before any other
	// method and is not idempotent.
	Open(ctx context.Context) error

	// Ping verifies the connection is usable.
	Ping(ctx context.Context) error

	// TableNames lists the tables currently present at the destination.
	TableNames(ctx context.Context) ([]string, error)

	// CreateTable creates an empty table matching the frame's schema.
	CreateTable(ctx context.Context, f *dataset.Frame) error

	// CopyFrame copies every row of the frame into its table, indexing the
	// ID-suffixed columns where the engine supports indexes.
	CopyFrame(ctx context.Context, f *dataset.Frame) error

	// Close releases the connection. Safe to call on a backend that never
	// opened.
	Close() error
}

// Revision records one population run of a backend.
type Revision struct {
	ID             string
	DatasetVersion string
	TablesCopied   int
	RowsCopied     int64
	LoadedAt       time.Time
}

// RevisionRecorder is implemented by backends that keep a local history of
// population runs.
type RevisionRecorder interface {
	RecordRevision(ctx context.Context, rev Revision) error
}
