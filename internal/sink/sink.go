package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salespipe/internal/core"
)

const insertSQL = `
INSERT INTO processed_data (
	product_id, product_name, category,
	price, quantity_sold, rating, review_count
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

const schemaSQL = `
CREATE TABLE IF NOT EXISTS processed_data (
	id            BIGSERIAL PRIMARY KEY,
	product_id    TEXT          NOT NULL,
	product_name  TEXT          NOT NULL,
	category      TEXT          NOT NULL,
	price         NUMERIC(12,2) NOT NULL,
	quantity_sold BIGINT        NOT NULL,
	rating        NUMERIC(4,2),
	review_count  BIGINT,
	created_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_processed_data_product_id ON processed_data(product_id);
CREATE INDEX IF NOT EXISTS idx_processed_data_category   ON processed_data(category);`

// PgxSink loads cleaned datasets into PostgreSQL. The batch insert is
// wrapped in one transaction, committed only if every row maps and
// inserts successfully, else rolled back in full.
type PgxSink struct {
	pool *pgxpool.Pool
}

// New creates a PgxSink and bootstraps the processed_data schema.
func New(ctx context.Context, pool *pgxpool.Pool) (*PgxSink, error) {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("sink: migrate: %w", err)
	}
	return &PgxSink{pool: pool}, nil
}

// Ingest implements core.Sink. It maps the whole serialized dataset
// before touching the database, so a mapping failure never opens a
// transaction. An empty dataset is a no-op commit and reports success.
func (s *PgxSink) Ingest(ctx context.Context, r io.Reader) (int, error) {
	records, err := MapDataset(r)
	if err != nil {
		return 0, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, &core.IngestionError{Reason: "begin transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertSQL,
			rec.ProductID, rec.ProductName, rec.Category,
			rec.Price, rec.QuantitySold, rec.Rating, rec.ReviewCount,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, &core.IngestionError{Line: i + 2, Reason: "insert row", Err: err}
		}
	}
	if err := results.Close(); err != nil {
		return 0, &core.IngestionError{Reason: "close batch", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &core.IngestionError{Reason: "commit", Err: err}
	}

	slog.Debug("sink batch committed", "rows", len(records))
	return len(records), nil
}
