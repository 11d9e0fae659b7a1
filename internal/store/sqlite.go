package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// SQLiteStore implements Store on a local SQLite file through database/sql.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite database and ensures the
// schema exists.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "file:menuscore.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDataset(ctx context.Context, d *Dataset, records []nutrition.FoodRecord) error {
	prepareDataset(d, records)
	d.ImportedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO menu_datasets (dataset_id, source, item_count, restaurant_count, imported_at)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID.String(), d.Source, d.ItemCount, d.Restaurants, d.ImportedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO menu_items (dataset_id, position, `+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`)
	if err != nil {
		return fmt.Errorf("prepare items: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		args := append([]interface{}{d.ID.String(), i}, itemValues(r)...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LatestDataset(ctx context.Context) (*Dataset, error) {
	d := &Dataset{}
	var id string
	var importedAt int64
	err := s.db.QueryRowContext(ctx, `SELECT dataset_id, source, item_count, restaurant_count, imported_at
		FROM menu_datasets ORDER BY imported_at DESC LIMIT 1`,
	).Scan(&id, &d.Source, &d.ItemCount, &d.Restaurants, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if d.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("dataset id %q: %w", id, err)
	}
	d.ImportedAt = time.Unix(0, importedAt).UTC()
	return d, nil
}

func (s *SQLiteStore) ListItems(ctx context.Context, datasetID uuid.UUID) ([]nutrition.FoodRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+`
		FROM menu_items WHERE dataset_id = $1 ORDER BY position ASC`, datasetID.String())
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

// withForeignKeys adds the foreign_keys pragma to dsn so that every pooled
// connection enforces the item cascade, not only the one that ran the schema.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS menu_datasets (
  dataset_id TEXT PRIMARY KEY,
  source TEXT NOT NULL DEFAULT '',
  item_count INTEGER NOT NULL,
  restaurant_count INTEGER NOT NULL,
  imported_at INTEGER NOT NULL -- unix nanoseconds
);

CREATE TABLE IF NOT EXISTS menu_items (
  dataset_id TEXT NOT NULL REFERENCES menu_datasets(dataset_id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  restaurant TEXT NOT NULL,
  item TEXT NOT NULL,
  calories REAL NOT NULL DEFAULT 0,
  sodium REAL NOT NULL DEFAULT 0,
  saturated_fat REAL NOT NULL DEFAULT 0,
  trans_fat REAL NOT NULL DEFAULT 0,
  cholesterol REAL NOT NULL DEFAULT 0,
  sugars REAL NOT NULL DEFAULT 0,
  fiber REAL NOT NULL DEFAULT 0,
  protein REAL NOT NULL DEFAULT 0,
  vitamin_a REAL NOT NULL DEFAULT 0,
  vitamin_c REAL NOT NULL DEFAULT 0,
  calcium REAL NOT NULL DEFAULT 0,
  PRIMARY KEY (dataset_id, position)
);
`

// Open picks a Store implementation for driver.
func Open(ctx context.Context, driver Driver, dsn string) (Store, error) {
	switch driver {
	case DriverPostgres, "":
		return NewPostgresStore(ctx, dsn)
	case DriverSQLite:
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}
