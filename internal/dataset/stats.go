package dataset

import (
	"gonum.org/v1/gonum/stat"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

// Stats summarizes the loaded record set for the dashboard header.
type Stats struct {
	TotalItems       int     `json:"total_items"`
	TotalRestaurants int     `json:"total_restaurants"`
	AvgCalories      float64 `json:"avg_calories"`
	AvgSodium        float64 `json:"avg_sodium"`
	AvgProtein       float64 `json:"avg_protein"`
	MinCalories      float64 `json:"min_calories"`
	MaxCalories      float64 `json:"max_calories"`
}

// Stats computes summary figures over the full record set.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.records)
}

// Summarize computes Stats for records. An empty set yields the zero value.
func Summarize(records []nutrition.FoodRecord) Stats {
	if len(records) == 0 {
		return Stats{}
	}
	calories := make([]float64, len(records))
	sodium := make([]float64, len(records))
	protein := make([]float64, len(records))
	restaurants := make(map[string]struct{})
	st := Stats{
		TotalItems:  len(records),
		MinCalories: records[0].Calories,
		MaxCalories: records[0].Calories,
	}
	for i, r := range records {
		calories[i] = r.Calories
		sodium[i] = r.Sodium
		protein[i] = r.Protein
		restaurants[r.Restaurant] = struct{}{}
		if r.Calories < st.MinCalories {
			st.MinCalories = r.Calories
		}
		if r.Calories > st.MaxCalories {
			st.MaxCalories = r.Calories
		}
	}
	st.TotalRestaurants = len(restaurants)
	st.AvgCalories = stat.Mean(calories, nil)
	st.AvgSodium = stat.Mean(sodium, nil)
	st.AvgProtein = stat.Mean(protein, nil)
	return st
}
