package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/fuelcast/gasprice-cli/internal/db"
)

// PostgresStore implements PriceStore using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: pool.Close}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS price_records (
	msa_name       TEXT PRIMARY KEY,
	current_price  DOUBLE PRECISION NOT NULL,
	previous_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	price_change   DOUBLE PRECISION NOT NULL DEFAULT 0,
	source         TEXT NOT NULL,
	confidence     DOUBLE PRECISION NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_price_records_updated_at ON price_records(updated_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) GetRecord(ctx context.Context, msaName string) (*PriceRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT msa_name, current_price, previous_price, price_change, source, confidence, updated_at
		 FROM price_records WHERE msa_name = $1`,
		msaName,
	)

	var r PriceRecord
	err := row.Scan(&r.MSAName, &r.CurrentPrice, &r.PreviousPrice, &r.PriceChange,
		&r.Source, &r.Confidence, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get record %s", msaName)
	}
	return &r, nil
}

func (s *PostgresStore) UpsertRecord(ctx context.Context, msaName string, price float64, source string, confidence float64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO price_records (msa_name, current_price, previous_price, price_change, source, confidence, updated_at)
		VALUES ($1, $2, 0, 0, $3, $4, $5)
		ON CONFLICT (msa_name) DO UPDATE SET
			previous_price = price_records.current_price,
			price_change   = EXCLUDED.current_price - price_records.current_price,
			current_price  = EXCLUDED.current_price,
			source         = EXCLUDED.source,
			confidence     = EXCLUDED.confidence,
			updated_at     = EXCLUDED.updated_at`,
		msaName, price, source, confidence, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: upsert record %s", msaName)
}

func (s *PostgresStore) ListRecords(ctx context.Context) ([]PriceRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT msa_name, current_price, previous_price, price_change, source, confidence, updated_at
		 FROM price_records ORDER BY msa_name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	var records []PriceRecord
	for rows.Next() {
		var r PriceRecord
		if err := rows.Scan(&r.MSAName, &r.CurrentPrice, &r.PreviousPrice, &r.PriceChange,
			&r.Source, &r.Confidence, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list records iterate")
}
