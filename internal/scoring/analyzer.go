package scoring

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

const (
	// BadTarget is the minimum each bad-nutrient curve is pinned to.
	BadTarget = -100.0
	// GoodTarget is the maximum each good-nutrient curve is pinned to.
	GoodTarget = 100.0
)

// ItemScore is the score of a single menu item under its restaurant's curve.
type ItemScore struct {
	Record         nutrition.FoodRecord `json:"record"`
	RawScore       float64              `json:"raw_score"`
	PenalizedScore float64              `json:"penalized_score"`
}

// RestaurantScore aggregates the item scores of one restaurant.
type RestaurantScore struct {
	Restaurant  string      `json:"restaurant"`
	ItemCount   int         `json:"item_count"`
	Score       float64     `json:"score"`
	FinalCoeffs Quartic     `json:"final_coeffs"`
	Items       []ItemScore `json:"items"`
}

// AnalysisResult ranks restaurants by descending score.
type AnalysisResult struct {
	Restaurants []RestaurantScore `json:"restaurants"`
	MinCalories float64           `json:"min_calories"`
	MaxCalories float64           `json:"max_calories"`
}

// Top returns the best-ranked restaurant.
func (a *AnalysisResult) Top() RestaurantScore {
	return a.Restaurants[0]
}

// Find returns the score for the named restaurant.
func (a *AnalysisResult) Find(restaurant string) (RestaurantScore, bool) {
	for _, r := range a.Restaurants {
		if r.Restaurant == restaurant {
			return r, true
		}
	}
	return RestaurantScore{}, false
}

type group struct {
	restaurant string
	items      []nutrition.FoodRecord
}

// Analyze scores every restaurant in records sequentially. It returns nil
// when there is nothing to rank: no records, or no record with positive
// calories.
func Analyze(records []nutrition.FoodRecord) *AnalysisResult {
	groups, minCal, maxCal, ok := groupRecords(records)
	if !ok {
		return nil
	}
	results := make([]RestaurantScore, len(groups))
	for i, g := range groups {
		results[i] = scoreGroup(g)
	}
	return finish(results, minCal, maxCal)
}

// Analyzer scores restaurant groups concurrently. Groups share no state, so
// each worker writes only its own result slot; the final sort is the only
// synchronisation point.
type Analyzer struct {
	workers int
	logger  *slog.Logger
}

// NewAnalyzer creates an Analyzer running at most workers groups at once.
func NewAnalyzer(workers int, logger *slog.Logger) *Analyzer {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{workers: workers, logger: logger}
}

// Analyze is the concurrent form of the package-level Analyze. The only
// error it returns is ctx.Err().
func (a *Analyzer) Analyze(ctx context.Context, records []nutrition.FoodRecord) (*AnalysisResult, error) {
	start := time.Now()
	groups, minCal, maxCal, ok := groupRecords(records)
	if !ok {
		a.logger.Debug("nothing to analyze", "records", len(records))
		return nil, nil
	}

	results := make([]RestaurantScore, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scoreGroup(groups[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := finish(results, minCal, maxCal)
	a.logger.Debug("analysis complete",
		"restaurants", len(res.Restaurants),
		"records", len(records),
		"workers", a.workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func groupRecords(records []nutrition.FoodRecord) ([]group, float64, float64, bool) {
	if len(records) == 0 {
		return nil, 0, 0, false
	}
	minCal, maxCal := math.Inf(1), math.Inf(-1)
	index := make(map[string]int)
	var groups []group
	for _, rec := range records {
		i, ok := index[rec.Restaurant]
		if !ok {
			i = len(groups)
			index[rec.Restaurant] = i
			groups = append(groups, group{restaurant: rec.Restaurant})
		}
		groups[i].items = append(groups[i].items, rec)
		if rec.Calories > 0 {
			minCal = math.Min(minCal, rec.Calories)
			maxCal = math.Max(maxCal, rec.Calories)
		}
	}
	if math.IsInf(minCal, 0) || math.IsInf(maxCal, 0) {
		return nil, 0, 0, false
	}
	return groups, minCal, maxCal, true
}

func scoreGroup(g group) RestaurantScore {
	var domain []float64
	for _, it := range g.items {
		if it.Calories > 0 {
			domain = append(domain, it.Calories)
		}
	}

	var bad, good Quartic
	for _, n := range nutrition.AllNutrients {
		q, ok := fitNutrient(g.items, n)
		if !ok {
			continue
		}
		if n.IsBad() {
			bad = bad.Add(q.ShiftToMin(domain, BadTarget))
		} else {
			good = good.Add(q.ShiftToMax(domain, GoodTarget))
		}
	}
	final := bad.Add(good)

	out := RestaurantScore{
		Restaurant:  g.restaurant,
		ItemCount:   len(g.items),
		FinalCoeffs: final,
		Items:       make([]ItemScore, 0, len(g.items)),
	}
	for _, it := range g.items {
		raw := final.Eval(it.Calories)
		penalized := raw * Penalty(it.Calories, raw)
		out.Items = append(out.Items, ItemScore{Record: it, RawScore: raw, PenalizedScore: penalized})
		out.Score += penalized
	}
	return out
}

// fitNutrient fits nutrient-per-calorie against calories over the items with
// positive calories. ok is false when no item qualifies.
func fitNutrient(items []nutrition.FoodRecord, n nutrition.Nutrient) (Quartic, bool) {
	var xs, ys []float64
	for _, it := range items {
		if it.Calories <= 0 {
			continue
		}
		xs = append(xs, it.Calories)
		ys = append(ys, safeRatio(n.Value(it), it.Calories))
	}
	if len(xs) == 0 {
		return Quartic{}, false
	}
	return FitQuartic(xs, ys), true
}

func safeRatio(num, den float64) float64 {
	if math.IsNaN(num) || math.IsInf(num, 0) || math.IsNaN(den) || math.IsInf(den, 0) || den == 0 {
		return 0
	}
	return num / den
}

func finish(results []RestaurantScore, minCal, maxCal float64) *AnalysisResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return &AnalysisResult{Restaurants: results, MinCalories: minCal, MaxCalories: maxCal}
}
