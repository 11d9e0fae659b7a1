package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Menuscore/internal/hermes"
	"github.com/MikeSquared-Agency/Menuscore/internal/metrics"
	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
	"github.com/MikeSquared-Agency/Menuscore/internal/scoring"
	"github.com/MikeSquared-Agency/Menuscore/internal/store"
)

// ScoreSummary is the ranking row the dashboard renders.
type ScoreSummary struct {
	Restaurant   string          `json:"restaurant"`
	Score        float64         `json:"score"`
	ItemCount    int             `json:"item_count"`
	Coefficients scoring.Quartic `json:"coefficients"`
}

// Service owns the loaded menu records and a memoized analysis of the full
// set. It is constructed once and passed to its consumers.
type Service struct {
	analyzer *scoring.Analyzer
	store    store.Store
	hermes   hermes.Client
	logger   *slog.Logger

	mu         sync.RWMutex
	records    []nutrition.FoodRecord
	current    *store.Dataset
	generation uint64
	analysis   *scoring.AnalysisResult
	analyzed   bool
}

// New creates a Service. st and h may be nil: without a store imports are
// kept in memory only, and without a client no events are published.
func New(analyzer *scoring.Analyzer, st store.Store, h hermes.Client, logger *slog.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		store:    st,
		hermes:   h,
		logger:   logger,
	}
}

// Load replaces the record set with the contents of src.
func (s *Service) Load(ctx context.Context, src Source) error {
	records, ds, err := src.Load(ctx)
	if err != nil {
		return err
	}
	s.Replace(records, ds)
	s.logger.Info("dataset loaded", "source", ds.Source, "items", len(records), "restaurants", ds.Restaurants)
	return nil
}

// Replace swaps in a new record set and drops the memoized analysis.
func (s *Service) Replace(records []nutrition.FoodRecord, ds *store.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.current = ds
	s.generation++
	s.analysis = nil
	s.analyzed = false
	metrics.DatasetItems.Set(float64(len(records)))
}

// Current describes the loaded dataset, or nil before the first load.
func (s *Service) Current() *store.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	ds := *s.current
	return &ds
}

// Restaurants returns the distinct restaurant names, sorted.
func (s *Service) Restaurants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	names := []string{}
	for _, r := range s.records {
		if _, ok := seen[r.Restaurant]; !ok {
			seen[r.Restaurant] = struct{}{}
			names = append(names, r.Restaurant)
		}
	}
	sort.Strings(names)
	return names
}

// ItemsByRestaurant returns the records of one restaurant in input order.
func (s *Service) ItemsByRestaurant(name string) []nutrition.FoodRecord {
	return s.FilterRecords(Filter{Restaurant: name})
}

// FilterRecords returns the records that pass f.
func (s *Service) FilterRecords(f Filter) []nutrition.FoodRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return f.Apply(s.records)
}

// Analysis returns the memoized analysis of the full record set. A nil
// result means there is nothing to rank.
func (s *Service) Analysis(ctx context.Context) (*scoring.AnalysisResult, error) {
	s.mu.RLock()
	if s.analyzed {
		res := s.analysis
		s.mu.RUnlock()
		return res, nil
	}
	records, gen := s.records, s.generation
	s.mu.RUnlock()

	res, took, err := s.run(ctx, records)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.generation == gen {
		s.analysis = res
		s.analyzed = true
	}
	s.mu.Unlock()

	if res == nil {
		metrics.RestaurantsRanked.Set(0)
		return nil, nil
	}
	metrics.RestaurantsRanked.Set(float64(len(res.Restaurants)))
	top := res.Top()
	hermes.Notify(s.hermes, s.logger, hermes.SubjectAnalysisCompleted, hermes.AnalysisCompletedEvent{
		Restaurants:   len(res.Restaurants),
		Items:         len(records),
		TopRestaurant: top.Restaurant,
		TopScore:      top.Score,
		MinCalories:   res.MinCalories,
		MaxCalories:   res.MaxCalories,
		DurationMs:    took.Milliseconds(),
		Timestamp:     time.Now().UTC(),
	})
	return res, nil
}

// Analyze scores the records that pass f. The zero filter is served from
// the memoized full analysis.
func (s *Service) Analyze(ctx context.Context, f Filter) (*scoring.AnalysisResult, error) {
	if f.IsZero() {
		return s.Analysis(ctx)
	}
	res, _, err := s.run(ctx, s.FilterRecords(f))
	return res, err
}

// RestaurantScores lists the full-set ranking without item detail.
func (s *Service) RestaurantScores(ctx context.Context) ([]ScoreSummary, error) {
	res, err := s.Analysis(ctx)
	if err != nil {
		return nil, err
	}
	return Summaries(res), nil
}

// Summaries flattens an analysis into ranking rows; nil yields an empty list.
func Summaries(res *scoring.AnalysisResult) []ScoreSummary {
	out := []ScoreSummary{}
	if res == nil {
		return out
	}
	for _, r := range res.Restaurants {
		out = append(out, ScoreSummary{
			Restaurant:   r.Restaurant,
			Score:        r.Score,
			ItemCount:    r.ItemCount,
			Coefficients: r.FinalCoeffs,
		})
	}
	return out
}

func (s *Service) run(ctx context.Context, records []nutrition.FoodRecord) (*scoring.AnalysisResult, time.Duration, error) {
	start := time.Now()
	res, err := s.analyzer.Analyze(ctx, records)
	took := time.Since(start)
	switch {
	case err != nil:
		metrics.ObserveAnalysis(metrics.OutcomeCancelled, took)
		return nil, took, err
	case res == nil:
		metrics.ObserveAnalysis(metrics.OutcomeEmpty, took)
	default:
		metrics.ObserveAnalysis(metrics.OutcomeRanked, took)
	}
	return res, took, nil
}

// Import parses a CSV upload, persists it when a store is configured, makes
// it the current dataset and announces it. A *nutrition.ParseError is
// returned wrapped.
func (s *Service) Import(ctx context.Context, text, source string) (*store.Dataset, error) {
	records, err := nutrition.Parse(text)
	if err != nil {
		var pe *nutrition.ParseError
		if errors.As(err, &pe) {
			metrics.ParseFailuresTotal.Inc()
		}
		return nil, fmt.Errorf("import dataset: %w", err)
	}

	ds := &store.Dataset{Source: source}
	if s.store != nil {
		if err := s.store.SaveDataset(ctx, ds, records); err != nil {
			return nil, fmt.Errorf("save dataset: %w", err)
		}
	} else {
		ds.ID = uuid.New()
		ds.ItemCount = len(records)
		ds.Restaurants = store.CountRestaurants(records)
		ds.ImportedAt = time.Now().UTC()
	}

	s.Replace(records, ds)
	s.logger.Info("dataset imported", "dataset_id", ds.ID, "source", source, "items", ds.ItemCount)

	hermes.Notify(s.hermes, s.logger, hermes.SubjectDatasetImported(ds.ID.String()), hermes.DatasetImportedEvent{
		DatasetID:   ds.ID.String(),
		Source:      ds.Source,
		ItemCount:   ds.ItemCount,
		Restaurants: ds.Restaurants,
		ImportedAt:  ds.ImportedAt,
	})
	return ds, nil
}

// FollowImports reloads from the store whenever another replica announces a
// dataset this one has not loaded. It is a no-op without both a store and a
// client.
func (s *Service) FollowImports(ctx context.Context) error {
	if s.store == nil || s.hermes == nil {
		return nil
	}
	return s.hermes.Subscribe(hermes.SubjectDatasetImportedAll, func(subject string, data []byte) {
		var ev hermes.DatasetImportedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Warn("bad dataset event", "subject", subject, "error", err)
			return
		}
		if cur := s.Current(); cur != nil && cur.ID.String() == ev.DatasetID {
			return
		}
		if err := s.Load(ctx, StoreSource{Store: s.store}); err != nil {
			s.logger.Warn("failed to follow dataset import", "dataset_id", ev.DatasetID, "error", err)
		}
	})
}
