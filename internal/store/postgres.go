package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveDataset(ctx context.Context, d *Dataset, records []nutrition.FoodRecord) error {
	prepareDataset(d, records)

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO menu_datasets (dataset_id, source, item_count, restaurant_count)
		VALUES ($1, $2, $3, $4)
		RETURNING imported_at`,
		d.ID, d.Source, d.ItemCount, d.Restaurants,
	).Scan(&d.ImportedAt)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	rows := make([][]interface{}, len(records))
	for i, r := range records {
		rows[i] = append([]interface{}{d.ID, i}, itemValues(r)...)
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"menu_items"},
		[]string{"dataset_id", "position", "restaurant", "item", "calories", "sodium",
			"saturated_fat", "trans_fat", "cholesterol", "sugars", "fiber", "protein",
			"vitamin_a", "vitamin_c", "calcium"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy items: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) LatestDataset(ctx context.Context) (*Dataset, error) {
	d := &Dataset{}
	err := s.pool.QueryRow(ctx, `
		SELECT dataset_id, source, item_count, restaurant_count, imported_at
		FROM menu_datasets ORDER BY imported_at DESC LIMIT 1`,
	).Scan(&d.ID, &d.Source, &d.ItemCount, &d.Restaurants, &d.ImportedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostgresStore) ListItems(ctx context.Context, datasetID uuid.UUID) ([]nutrition.FoodRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items WHERE dataset_id = $1
		ORDER BY position ASC`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nutrition.FoodRecord
	for rows.Next() {
		r, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS menu_datasets (
  dataset_id UUID PRIMARY KEY,
  source TEXT NOT NULL DEFAULT '',
  item_count INTEGER NOT NULL,
  restaurant_count INTEGER NOT NULL,
  imported_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS menu_items (
  dataset_id UUID NOT NULL REFERENCES menu_datasets(dataset_id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  restaurant TEXT NOT NULL,
  item TEXT NOT NULL,
  calories DOUBLE PRECISION NOT NULL DEFAULT 0,
  sodium DOUBLE PRECISION NOT NULL DEFAULT 0,
  saturated_fat DOUBLE PRECISION NOT NULL DEFAULT 0,
  trans_fat DOUBLE PRECISION NOT NULL DEFAULT 0,
  cholesterol DOUBLE PRECISION NOT NULL DEFAULT 0,
  sugars DOUBLE PRECISION NOT NULL DEFAULT 0,
  fiber DOUBLE PRECISION NOT NULL DEFAULT 0,
  protein DOUBLE PRECISION NOT NULL DEFAULT 0,
  vitamin_a DOUBLE PRECISION NOT NULL DEFAULT 0,
  vitamin_c DOUBLE PRECISION NOT NULL DEFAULT 0,
  calcium DOUBLE PRECISION NOT NULL DEFAULT 0,
  PRIMARY KEY (dataset_id, position)
);
`
