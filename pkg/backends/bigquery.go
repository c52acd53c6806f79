package backends

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/diamondstats/lahman/pkg/dataset"
)

// BigQuery is the warehouse backend. Tables are populated through load
// jobs: each frame is submitted as a CSV load job and waited on before the
// next one starts.
type BigQuery struct {
	projectID string
	datasetID string
	opts      []option.ClientOption

	client *bigquery.Client
	ds     *bigquery.Dataset
}

// NewBigQuery creates a BigQuery backend targeting the given project and
// dataset. The dataset is created on Open if it does not exist.
func NewBigQuery(projectID, datasetID string, opts ...option.ClientOption) *BigQuery {
	return &BigQuery{projectID: projectID, datasetID: datasetID, opts: opts}
}

func (b *BigQuery) Kind() Kind {
	return KindBigQuery
}

// Client exposes the underlying handle. Valid only after Open.
func (b *BigQuery) Client() *bigquery.Client {
	return b.client
}

func (b *BigQuery) Open(ctx context.Context) error {
	client, err := bigquery.NewClient(ctx, b.projectID, b.opts...)
	if err != nil {
		return fmt.Errorf("opening bigquery: %w", err)
	}
	ds := client.Dataset(b.datasetID)

	if _, err := ds.Metadata(ctx); err != nil {
		var apiErr *googleapi.Error
		if !errors.As(err, &apiErr) || apiErr.Code != 404 {
			_ = client.Close()
			return fmt.Errorf("checking dataset %s: %w", b.datasetID, err)
		}
		if err := ds.Create(ctx, &bigquery.DatasetMetadata{}); err != nil {
			_ = client.Close()
			return fmt.Errorf("creating dataset %s: %w", b.datasetID, err)
		}
	}

	b.client = client
	b.ds = ds
	return nil
}

// Ping verifies the service answers by listing the project's datasets.
func (b *BigQuery) Ping(ctx context.Context) error {
	if b.client == nil {
		return errors.New("bigquery: not opened")
	}
	it := b.client.Datasets(ctx)
	it.PageInfo().MaxSize = 1
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("pinging bigquery: %w", err)
	}
	return nil
}

func (b *BigQuery) TableNames(ctx context.Context) ([]string, error) {
	var names []string
	it := b.ds.Tables(ctx)
	for {
		t, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing bigquery tables: %w", err)
		}
		names = append(names, t.TableID)
	}
	return names, nil
}

func (b *BigQuery) CreateTable(ctx context.Context, f *dataset.Frame) error {
	schema := make(bigquery.Schema, len(f.Columns))
	for i, c := range f.Columns {
		schema[i] = &bigquery.FieldSchema{Name: c.Name, Type: fieldType(c.Kind)}
	}
	md := &bigquery.TableMetadata{Schema: schema}
	if err := b.ds.Table(f.Name).Create(ctx, md); err != nil {
		return fmt.Errorf("creating bigquery table %s: %w", f.Name, err)
	}
	return nil
}

// CopyFrame uploads the frame as one CSV load job and waits for it.
func (b *BigQuery) CopyFrame(ctx context.Context, f *dataset.Frame) error {
	var buf bytes.Buffer
	if err := f.WriteCSV(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", f.Name, err)
	}

	src := bigquery.NewReaderSource(&buf)
	src.SourceFormat = bigquery.CSV
	src.SkipLeadingRows = 1
	src.AllowQuotedNewlines = true

	loader := b.ds.Table(f.Name).LoaderFrom(src)
	loader.WriteDisposition = bigquery.WriteAppend

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("submitting load job for %s: %w", f.Name, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting on load job %s: %w", job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("load job %s for %s: %w", job.ID(), f.Name, err)
	}
	return nil
}

func (b *BigQuery) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

func fieldType(k dataset.ColumnKind) bigquery.FieldType {
	switch k {
	case dataset.Integer:
		return bigquery.IntegerFieldType
	case dataset.Float:
		return bigquery.FloatFieldType
	default:
		return bigquery.StringFieldType
	}
}
