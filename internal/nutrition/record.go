package nutrition

// FoodRecord is one menu item with its calorie count and nutrient values.
// Records are treated as immutable once parsed.
type FoodRecord struct {
	Restaurant   string  `json:"restaurant"`
	Item         string  `json:"item"`
	Calories     float64 `json:"calories"`
	Sodium       float64 `json:"sodium"`
	SaturatedFat float64 `json:"saturated_fat"`
	TransFat     float64 `json:"trans_fat"`
	Cholesterol  float64 `json:"cholesterol"`
	Sugars       float64 `json:"sugars"`
	Fiber        float64 `json:"fiber"`
	Protein      float64 `json:"protein"`
	VitaminA     float64 `json:"vitamin_a"`
	VitaminC     float64 `json:"vitamin_c"`
	Calcium      float64 `json:"calcium"`
}

// Nutrient identifies one of the ten scored nutrient columns.
type Nutrient int

const (
	Sodium Nutrient = iota
	SaturatedFat
	TransFat
	Cholesterol
	Sugars
	Fiber
	Protein
	VitaminA
	VitaminC
	Calcium
)

// AllNutrients lists every scored nutrient, bad ones first. Bad nutrients
// are pulled toward a curve minimum of -100, good ones toward a maximum of +100.
var AllNutrients = []Nutrient{Sodium, SaturatedFat, TransFat, Cholesterol, Sugars,
	Fiber, Protein, VitaminA, VitaminC, Calcium}

type nutrientInfo struct {
	name  string
	value func(FoodRecord) float64
}

var nutrients = [...]nutrientInfo{
	Sodium:       {"sodium", func(r FoodRecord) float64 { return r.Sodium }},
	SaturatedFat: {"saturated_fat", func(r FoodRecord) float64 { return r.SaturatedFat }},
	TransFat:     {"trans_fat", func(r FoodRecord) float64 { return r.TransFat }},
	Cholesterol:  {"cholesterol", func(r FoodRecord) float64 { return r.Cholesterol }},
	Sugars:       {"sugars", func(r FoodRecord) float64 { return r.Sugars }},
	Fiber:        {"fiber", func(r FoodRecord) float64 { return r.Fiber }},
	Protein:      {"protein", func(r FoodRecord) float64 { return r.Protein }},
	VitaminA:     {"vitamin_a", func(r FoodRecord) float64 { return r.VitaminA }},
	VitaminC:     {"vitamin_c", func(r FoodRecord) float64 { return r.VitaminC }},
	Calcium:      {"calcium", func(r FoodRecord) float64 { return r.Calcium }},
}

// String returns the canonical column name.
func (n Nutrient) String() string {
	if n < 0 || int(n) >= len(nutrients) {
		return "unknown"
	}
	return nutrients[n].name
}

// Value reads the nutrient from r.
func (n Nutrient) Value(r FoodRecord) float64 {
	return nutrients[n].value(r)
}

// IsBad reports whether n belongs to the penalised group.
func (n Nutrient) IsBad() bool {
	return n >= Sodium && n <= Sugars
}
