package nutrition

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseError reports a header that lacks one or more required columns.
// It is the only fatal parse condition; bad rows are skipped silently.
type ParseError struct {
	Missing []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csv must include headers at least: %s (missing: %s)",
		requiredHeaderHint, strings.Join(e.Missing, ", "))
}

const requiredHeaderHint = "restaurant,item (or item_name),calories,sodium," +
	"sat_fat (or saturated_fat),trans_fat,cholesterol,sugar (or sugars)," +
	"fiber,protein,vit_a (or vitamin_a),vit_c (or vitamin_c),calcium"

type field int

const (
	colRestaurant field = iota
	colItem
	colCalories
	colSodium
	colSatFat
	colTransFat
	colCholesterol
	colSugars
	colFiber
	colProtein
	colVitA
	colVitC
	colCalcium
	numFields
)

// headerAliases lists accepted header names per column, preferred name first.
var headerAliases = [numFields][]string{
	colRestaurant:  {"restaurant"},
	colItem:        {"item", "item_name"},
	colCalories:    {"calories"},
	colSodium:      {"sodium"},
	colSatFat:      {"sat_fat", "saturated_fat"},
	colTransFat:    {"trans_fat"},
	colCholesterol: {"cholesterol"},
	colSugars:      {"sugar", "sugars"},
	colFiber:       {"fiber"},
	colProtein:     {"protein"},
	colVitA:        {"vit_a", "vitamin_a"},
	colVitC:        {"vit_c", "vitamin_c"},
	colCalcium:     {"calcium"},
}

// ParseReader reads all of r and parses it with Parse.
func ParseReader(r io.Reader) ([]FoodRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return Parse(string(data))
}

// Parse converts comma-separated text into food records. The first
// non-blank line is the header. Header names are case-insensitive and
// accept the synonyms in headerAliases.
func Parse(text string) ([]FoodRecord, error) {
	var lines []string
	for _, line := range strings.Split(lineBreaks.Replace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return []FoodRecord{}, nil
	}

	header, _ := splitLine(lines[0])
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]FoodRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		parts, err := splitLine(line)
		if err != nil || len(parts) != len(header) {
			continue
		}
		restaurant := strings.TrimSpace(parts[cols[colRestaurant]])
		item := strings.TrimSpace(parts[cols[colItem]])
		if restaurant == "" || item == "" {
			continue
		}
		num := func(f field) float64 { return toNumber(parts[cols[f]]) }
		records = append(records, FoodRecord{
			Restaurant:   restaurant,
			Item:         item,
			Calories:     num(colCalories),
			Sodium:       num(colSodium),
			SaturatedFat: num(colSatFat),
			TransFat:     num(colTransFat),
			Cholesterol:  num(colCholesterol),
			Sugars:       num(colSugars),
			Fiber:        num(colFiber),
			Protein:      num(colProtein),
			VitaminA:     num(colVitA),
			VitaminC:     num(colVitC),
			Calcium:      num(colCalcium),
		})
	}
	return records, nil
}

func splitLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

func locateColumns(header []string) ([numFields]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var cols [numFields]int
	var missing []string
	for f := field(0); f < numFields; f++ {
		cols[f] = -1
		for _, alias := range headerAliases[f] {
			if i, ok := index[alias]; ok {
				cols[f] = i
				break
			}
		}
		if cols[f] < 0 {
			missing = append(missing, strings.Join(headerAliases[f], "/"))
		}
	}
	if len(missing) > 0 {
		return cols, &ParseError{Missing: missing}
	}
	return cols, nil
}

// lineBreaks folds CRLF and bare CR line endings into LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// toNumber coerces blank, unparsable, hexadecimal and non-finite cells to 0.
func toNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || isHex(s) {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
