package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

// Dataset describes one imported menu table.
type Dataset struct {
	ID          uuid.UUID `json:"dataset_id"`
	Source      string    `json:"source"`
	ItemCount   int       `json:"item_count"`
	Restaurants int       `json:"restaurants"`
	ImportedAt  time.Time `json:"imported_at"`
}

// Store persists imported menu records. Scores are always recomputed and
// never stored.
type Store interface {
	// SaveDataset writes d and its records in one transaction, filling in
	// d.ID (when nil) and d.ImportedAt.
	SaveDataset(ctx context.Context, d *Dataset, records []nutrition.FoodRecord) error
	// LatestDataset returns the most recent import, or nil when there is none.
	LatestDataset(ctx context.Context) (*Dataset, error)
	// ListItems returns a dataset's records in import order.
	ListItems(ctx context.Context, datasetID uuid.UUID) ([]nutrition.FoodRecord, error)
	Close() error
}

// CountRestaurants returns the number of distinct restaurants in records.
func CountRestaurants(records []nutrition.FoodRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Restaurant] = struct{}{}
	}
	return len(seen)
}

const itemColumns = `restaurant, item, calories, sodium, saturated_fat, trans_fat,
	cholesterol, sugars, fiber, protein, vitamin_a, vitamin_c, calcium`

func itemValues(r nutrition.FoodRecord) []interface{} {
	return []interface{}{
		r.Restaurant, r.Item, r.Calories, r.Sodium, r.SaturatedFat, r.TransFat,
		r.Cholesterol, r.Sugars, r.Fiber, r.Protein, r.VitaminA, r.VitaminC, r.Calcium,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (nutrition.FoodRecord, error) {
	var r nutrition.FoodRecord
	err := row.Scan(
		&r.Restaurant, &r.Item, &r.Calories, &r.Sodium, &r.SaturatedFat, &r.TransFat,
		&r.Cholesterol, &r.Sugars, &r.Fiber, &r.Protein, &r.VitaminA, &r.VitaminC, &r.Calcium,
	)
	return r, err
}

func prepareDataset(d *Dataset, records []nutrition.FoodRecord) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.ItemCount = len(records)
	d.Restaurants = CountRestaurants(records)
}
