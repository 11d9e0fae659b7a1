package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
	"github.com/MikeSquared-Agency/Menuscore/internal/store"
)

// ErrNoDataset is returned by a Source that has nothing to load.
var ErrNoDataset = errors.New("no dataset available")

// Source supplies a full record set to Service.Load.
type Source interface {
	Load(ctx context.Context) ([]nutrition.FoodRecord, *store.Dataset, error)
}

// FileSource reads a CSV file from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Load(_ context.Context) ([]nutrition.FoodRecord, *store.Dataset, error) {
	fh, err := os.Open(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("csv not found at %s: %w", f.Path, ErrNoDataset)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer fh.Close()

	records, err := nutrition.ParseReader(fh)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return records, &store.Dataset{
		Source:      filepath.Base(f.Path),
		ItemCount:   len(records),
		Restaurants: store.CountRestaurants(records),
	}, nil
}

// StoreSource loads the most recent dataset from a Store.
type StoreSource struct {
	Store store.Store
}

func (s StoreSource) Load(ctx context.Context) ([]nutrition.FoodRecord, *store.Dataset, error) {
	ds, err := s.Store.LatestDataset(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("latest dataset: %w", err)
	}
	if ds == nil {
		return nil, nil, ErrNoDataset
	}
	records, err := s.Store.ListItems(ctx, ds.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list items for %s: %w", ds.ID, err)
	}
	return records, ds, nil
}

// FirstAvailable tries each source in order and returns the first that has
// a dataset.
type FirstAvailable []Source

func (fa FirstAvailable) Load(ctx context.Context) ([]nutrition.FoodRecord, *store.Dataset, error) {
	for _, src := range fa {
		records, ds, err := src.Load(ctx)
		if errors.Is(err, ErrNoDataset) {
			continue
		}
		return records, ds, err
	}
	return nil, nil, ErrNoDataset
}
