package hermes

import "time"

type DatasetImportedEvent struct {
	DatasetID   string    `json:"dataset_id"`
	Source      string    `json:"source"`
	ItemCount   int       `json:"item_count"`
	Restaurants int       `json:"restaurants"`
	ImportedAt  time.Time `json:"imported_at"`
}

type AnalysisCompletedEvent struct {
	Restaurants   int       `json:"restaurants"`
	Items         int       `json:"items"`
	TopRestaurant string    `json:"top_restaurant"`
	TopScore      float64   `json:"top_score"`
	MinCalories   float64   `json:"min_calories"`
	MaxCalories   float64   `json:"max_calories"`
	DurationMs    int64     `json:"duration_ms"`
	Timestamp     time.Time `json:"timestamp"`
}
