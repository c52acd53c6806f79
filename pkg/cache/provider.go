// Package cache provides the dataset cache provider: get-or-create a live
// backend handle, populating any missing dataset tables on first use. The
// provider is an explicit object meant to be constructed once and shared,
// not hidden package state.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/diamondstats/lahman/pkg/backends"
	"github.com/diamondstats/lahman/pkg/config"
	"github.com/diamondstats/lahman/pkg/dataset"
	"github.com/diamondstats/lahman/pkg/telemetry"
)

// Provider caches one open backend handle per kind for its own lifetime.
// Handles are cached only after every required dataset table is confirmed
// present. There is no eviction; Close releases everything.
type Provider struct {
	cfg     config.Config
	log     *telemetry.Logger
	metrics *telemetry.Metrics

	mu      sync.Mutex
	handles map[backends.Kind]backends.Backend
	factory func(backends.Kind) (backends.Backend, error)
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the progress logger.
func WithLogger(l *telemetry.Logger) Option {
	return func(p *Provider) { p.log = l.Component("cache") }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// New creates a provider over the given backend configuration.
func New(cfg config.Config, opts ...Option) *Provider {
	p := &Provider{
		cfg:     cfg,
		log:     telemetry.NewNopLogger(),
		handles: make(map[backends.Kind]backends.Backend),
	}
	p.factory = p.newBackend
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) newBackend(kind backends.Kind) (backends.Backend, error) {
	switch kind {
	case backends.KindSQLite:
		return backends.NewSQLite(p.cfg.SQLite.Path), nil
	case backends.KindDuckDB:
		return backends.NewDuckDB(p.cfg.DuckDB.Path), nil
	case backends.KindPostgres:
		return backends.NewPostgres(p.cfg.Postgres.DSN()), nil
	case backends.KindMySQL:
		return backends.NewMySQL(p.cfg.MySQL.DSN()), nil
	case backends.KindBigQuery:
		var opts []option.ClientOption
		if f := p.cfg.BigQuery.CredentialsFile; f != "" {
			opts = append(opts, option.WithCredentialsFile(f))
		}
		return backends.NewBigQuery(p.cfg.BigQuery.Project, p.cfg.BigQuery.Dataset, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", backends.ErrUnknownKind, kind)
	}
}

// Get returns the cached handle for kind, connecting and populating missing
// dataset tables first if this is the kind's first use. Calling Get twice
// for the same kind returns the identical handle.
func (p *Provider) Get(ctx context.Context, kind backends.Kind) (backends.Backend, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if b, ok := p.handles[kind]; ok {
		return b, nil
	}

	b, err := p.factory(kind)
	if err != nil {
		return nil, err
	}
	if err := b.Open(ctx); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", kind, err)
	}
	if err := p.populate(ctx, b); err != nil {
		_ = b.Close()
		return nil, err
	}

	p.handles[kind] = b
	return b, nil
}

// DB returns the database/sql handle for one of the SQL kinds. BigQuery has
// no database/sql handle; use Get and the backend's Client instead.
func (p *Provider) DB(ctx context.Context, kind backends.Kind) (*sql.DB, error) {
	b, err := p.Get(ctx, kind)
	if err != nil {
		return nil, err
	}
	sqlb, ok := b.(interface{ DB() *sql.DB })
	if !ok {
		return nil, fmt.Errorf("backend %s has no database/sql handle", kind)
	}
	return sqlb.DB(), nil
}

// populate copies every required table the destination is missing. Tables
// already present are left untouched.
func (p *Provider) populate(ctx context.Context, b backends.Backend) error {
	existing, err := b.TableNames(ctx)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", b.Kind(), err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	var missing []string
	for _, name := range dataset.Tables() {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		p.log.Debug().Str("backend", b.Kind().String()).Msg("all dataset tables present")
		return nil
	}

	loadID := uuid.NewString()
	start := time.Now()
	var rows int64

	p.log.Info().
		Str("backend", b.Kind().String()).
		Str("load_id", loadID).
		Int("tables", len(missing)).
		Msg("copying missing dataset tables")

	for _, name := range missing {
		f, err := dataset.Open(name)
		if err != nil {
			return err
		}
		if err := b.CreateTable(ctx, f); err != nil {
			return err
		}
		if err := b.CopyFrame(ctx, f); err != nil {
			return err
		}
		rows += int64(f.NumRows())
		p.log.Info().
			Str("backend", b.Kind().String()).
			Str("table", name).
			Int("rows", f.NumRows()).
			Msg("table copied")
	}

	elapsed := time.Since(start)
	p.metrics.RecordCopy(b.Kind().String(), len(missing), rows, elapsed)

	if rec, ok := b.(backends.RevisionRecorder); ok {
		rev := backends.Revision{
			ID:             loadID,
			DatasetVersion: dataset.Version,
			TablesCopied:   len(missing),
			RowsCopied:     rows,
			LoadedAt:       time.Now(),
		}
		if err := rec.RecordRevision(ctx, rev); err != nil {
			return err
		}
	}

	p.log.Info().
		Str("backend", b.Kind().String()).
		Str("load_id", loadID).
		Int("tables", len(missing)).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Msg("backend populated")
	return nil
}

// Reachable reports whether the backend answers a lightweight connection
// attempt. Connection errors are swallowed into false; there are no retries
// and no caching. Unknown kinds never reach this method because ParseKind
// rejects them first.
func (p *Provider) Reachable(ctx context.Context, kind backends.Kind) bool {
	ok := p.probe(ctx, kind)
	p.metrics.RecordReachability(kind.String(), ok)
	return ok
}

func (p *Provider) probe(ctx context.Context, kind backends.Kind) bool {
	b, err := p.factory(kind)
	if err != nil {
		return false
	}
	defer b.Close()

	if err := b.Open(ctx); err != nil {
		p.log.Debug().Str("backend", kind.String()).Err(err).Msg("backend unreachable")
		return false
	}
	return b.Ping(ctx) == nil
}

// Close releases every cached handle. The provider must not be used after.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for kind, b := range p.handles {
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", kind, err)
		}
		delete(p.handles, kind)
	}
	return firstErr
}
