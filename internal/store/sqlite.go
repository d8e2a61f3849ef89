package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements PriceStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS price_records (
	msa_name       TEXT PRIMARY KEY,
	current_price  REAL NOT NULL,
	previous_price REAL NOT NULL DEFAULT 0,
	price_change   REAL NOT NULL DEFAULT 0,
	source         TEXT NOT NULL,
	confidence     REAL NOT NULL,
	updated_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_price_records_updated_at ON price_records(updated_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetRecord(ctx context.Context, msaName string) (*PriceRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT msa_name, current_price, previous_price, price_change, source, confidence, updated_at
		 FROM price_records WHERE msa_name = ?`,
		msaName,
	)

	var r PriceRecord
	err := row.Scan(&r.MSAName, &r.CurrentPrice, &r.PreviousPrice, &r.PriceChange,
		&r.Source, &r.Confidence, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get record %s", msaName)
	}
	return &r, nil
}

func (s *SQLiteStore) UpsertRecord(ctx context.Context, msaName string, price float64, source string, confidence float64) error {
	now := time.Now().UTC()

	// On conflict the prior current price becomes previous and the delta is
	// recomputed in the same statement.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO price_records (msa_name, current_price, previous_price, price_change, source, confidence, updated_at)
		VALUES (?, ?, 0, 0, ?, ?, ?)
		ON CONFLICT (msa_name) DO UPDATE SET
			previous_price = price_records.current_price,
			price_change   = excluded.current_price - price_records.current_price,
			current_price  = excluded.current_price,
			source         = excluded.source,
			confidence     = excluded.confidence,
			updated_at     = excluded.updated_at`,
		msaName, price, source, confidence, now,
	)
	return eris.Wrapf(err, "sqlite: upsert record %s", msaName)
}

func (s *SQLiteStore) ListRecords(ctx context.Context) ([]PriceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT msa_name, current_price, previous_price, price_change, source, confidence, updated_at
		 FROM price_records ORDER BY msa_name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close()

	var records []PriceRecord
	for rows.Next() {
		var r PriceRecord
		if err := rows.Scan(&r.MSAName, &r.CurrentPrice, &r.PreviousPrice, &r.PriceChange,
			&r.Source, &r.Confidence, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list records iterate")
}
