package dataset

import (
	"strings"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

// AllRestaurants is the dashboard's "no restaurant filter" value.
const AllRestaurants = "ALL"

// Filter narrows the record set before scoring. Calorie bounds are
// inclusive; nil bounds and an empty (or ALL) restaurant match everything.
type Filter struct {
	Restaurant  string
	MinCalories *float64
	MaxCalories *float64
}

// IsZero reports whether f matches every record.
func (f Filter) IsZero() bool {
	return f.restaurant() == "" && f.MinCalories == nil && f.MaxCalories == nil
}

func (f Filter) restaurant() string {
	r := strings.TrimSpace(f.Restaurant)
	if r == AllRestaurants {
		return ""
	}
	return r
}

// Match reports whether r passes the filter.
func (f Filter) Match(r nutrition.FoodRecord) bool {
	if name := f.restaurant(); name != "" && r.Restaurant != name {
		return false
	}
	if f.MinCalories != nil && r.Calories < *f.MinCalories {
		return false
	}
	if f.MaxCalories != nil && r.Calories > *f.MaxCalories {
		return false
	}
	return true
}

// Apply returns the records that pass the filter, in input order.
func (f Filter) Apply(records []nutrition.FoodRecord) []nutrition.FoodRecord {
	out := make([]nutrition.FoodRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
