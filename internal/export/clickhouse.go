package export

import (
	"context"
	"fmt"
	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/maxaizer/hh-harvester/internal/config"
	"github.com/maxaizer/hh-harvester/internal/dataset"
	"github.com/samber/lo"
	"time"
)

type clickhouseConn interface {
	Exec(ctx context.Context, query string, args ...any) error
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	Close() error
}

// ClickHouseExporter appends every dataset to a ReplacingMergeTree table,
// so re-collected vacancies replace older versions of themselves on merge.
type ClickHouseExporter struct {
	conn  clickhouseConn
	table string
	now   func() time.Time
}

func NewClickHouseExporter(cfg config.ClickHouseConfig) (*ClickHouseExporter, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, err
	}
	return &ClickHouseExporter{conn: conn, table: cfg.Table, now: time.Now}, nil
}

func (e *ClickHouseExporter) Name() string {
	return "clickhouse"
}

func (e *ClickHouseExporter) CreateTable(ctx context.Context) error {
	return e.conn.Exec(ctx, createTableQuery(e.table))
}

func (e *ClickHouseExporter) Export(ctx context.Context, d *dataset.Dataset) error {

	if err := d.Validate(); err != nil {
		return err
	}
	if d.Len() == 0 {
		return nil
	}

	if err := e.CreateTable(ctx); err != nil {
		return fmt.Errorf("failed to create table %s: %w", e.table, err)
	}

	batch, err := e.conn.PrepareBatch(ctx, "INSERT INTO "+e.table)
	if err != nil {
		return err
	}

	for i, column := range clickhouseColumns(d, e.now().UTC()) {
		if err = batch.Column(i).Append(column); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append column %d: %w", i, err)
		}
	}

	return batch.Send()
}

func (e *ClickHouseExporter) Close() error {
	return e.conn.Close()
}

func createTableQuery(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id String,
			employer String,
			name String,
			salary Bool,
			salary_from Nullable(Int64),
			salary_to Nullable(Int64),
			experience String,
			schedule String,
			key_skills Array(String),
			description String,
			collected_at DateTime64(3, 'UTC')
		) ENGINE = ReplacingMergeTree(collected_at)
		ORDER BY id
	`, table)
}

// clickhouseColumns lays the dataset out in table column order.
func clickhouseColumns(d *dataset.Dataset, collectedAt time.Time) []any {
	return []any{
		d.Ids,
		d.Employer,
		d.Name,
		d.Salary,
		toInt64(d.From),
		toInt64(d.To),
		d.Experience,
		d.Schedule,
		d.Keys,
		d.Description,
		lo.Times(d.Len(), func(_ int) time.Time { return collectedAt }),
	}
}

func toInt64(amounts []*int) []*int64 {
	return lo.Map(amounts, func(amount *int, _ int) *int64 {
		if amount == nil {
			return nil
		}
		return lo.ToPtr(int64(*amount))
	})
}
