package nutrition

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalCSV = `restaurant,item,calories,sodium,saturated_fat,trans_fat,cholesterol,sugars,fiber,protein,vitamin_a,vitamin_c,calcium
Mcdonalds,Big Mac,540,950,10,1,80,9,3,25,6,2,25
Mcdonalds,"Chicken, Crispy",680,1260,8,0,75,10,4,32,4,6,15
Subway,Veggie Delite,230,310,0.5,0,0,5,5,9,30,35,20
`

const synonymCSV = `Restaurant,Item_Name,Calories,Sodium,Sat_Fat,Trans_Fat,Cholesterol,Sugar,Fiber,Protein,Vit_A,Vit_C,Calcium
Mcdonalds,Big Mac,540,950,10,1,80,9,3,25,6,2,25
Mcdonalds,"Chicken, Crispy",680,1260,8,0,75,10,4,32,4,6,15
Subway,Veggie Delite,230,310,0.5,0,0,5,5,9,30,35,20
`

func TestParse_Canonical(t *testing.T) {
	recs, err := Parse(canonicalCSV)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, FoodRecord{
		Restaurant: "Mcdonalds", Item: "Big Mac", Calories: 540,
		Sodium: 950, SaturatedFat: 10, TransFat: 1, Cholesterol: 80, Sugars: 9,
		Fiber: 3, Protein: 25, VitaminA: 6, VitaminC: 2, Calcium: 25,
	}, recs[0])
	assert.Equal(t, "Chicken, Crispy", recs[1].Item)
	assert.Equal(t, "Subway", recs[2].Restaurant)
	assert.Equal(t, 0.5, recs[2].SaturatedFat)
}

func TestParse_SynonymsMatchCanonical(t *testing.T) {
	canonical, err := Parse(canonicalCSV)
	require.NoError(t, err)
	synonyms, err := Parse(synonymCSV)
	require.NoError(t, err)
	assert.Equal(t, canonical, synonyms)
}

func TestParse_MissingColumn(t *testing.T) {
	text := `restaurant,item,calories,sodium,sat_fat,trans_fat,cholesterol,sugar,fiber,protein,vit_a,vit_c
A,x,100,1,1,1,1,1,1,1,1,1
`
	_, err := Parse(text)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"calcium"}, pe.Missing)
	assert.Contains(t, err.Error(), "calcium")
}

func TestParse_SkipsBadRows(t *testing.T) {
	text := strings.Join([]string{
		"restaurant,item,calories,sodium,sat_fat,trans_fat,cholesterol,sugar,fiber,protein,vit_a,vit_c,calcium",
		"",
		"A,ok,100,1,1,1,1,1,1,1,1,1,1",
		"A,too,few,fields",
		"A,too,many,1,1,1,1,1,1,1,1,1,1,1",
		"   ",
		" ,blank restaurant,100,1,1,1,1,1,1,1,1,1,1",
		"B,  ,100,1,1,1,1,1,1,1,1,1,1",
		"B,second,200,1,1,1,1,1,1,1,1,1,1",
	}, "\n")

	recs, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "ok", recs[0].Item)
	assert.Equal(t, "second", recs[1].Item)
}

func TestParse_LenientNumbers(t *testing.T) {
	text := "restaurant,item,calories,sodium,sat_fat,trans_fat,cholesterol,sugar,fiber,protein,vit_a,vit_c,calcium\n" +
		"A,x,,abc,NaN,inf,-Inf,1e999, 7 ,1,1,1,1\n"

	recs, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, 0.0, r.Calories)
	assert.Equal(t, 0.0, r.Sodium)
	assert.Equal(t, 0.0, r.SaturatedFat)
	assert.Equal(t, 0.0, r.TransFat)
	assert.Equal(t, 0.0, r.Cholesterol)
	assert.Equal(t, 0.0, r.Sugars)
	assert.Equal(t, 7.0, r.Fiber)
}

func TestParse_HeaderOnlyOrEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "restaurant,item\n"} {
		recs, err := Parse(text)
		require.NoError(t, err)
		assert.Empty(t, recs)
	}
}

func TestParse_CRLF(t *testing.T) {
	text := strings.ReplaceAll(canonicalCSV, "\n", "\r\n")
	recs, err := Parse(text)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	assert.Equal(t, 20.0, recs[2].Calcium)
}

func TestParse_CROnly(t *testing.T) {
	text := strings.ReplaceAll(canonicalCSV, "\n", "\r")
	recs, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Veggie Delite", recs[2].Item)
	assert.Equal(t, 20.0, recs[2].Calcium)

	// a bad header is still reported when rows end in a bare CR
	_, err = Parse("restaurant,item,calories\rA,B,100\r")
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParse_HexCellsAreZero(t *testing.T) {
	text := "restaurant,item,calories,sodium,sat_fat,trans_fat,cholesterol,sugar,fiber,protein,vit_a,vit_c,calcium\n" +
		"A,x,100,0x1p4,-0X10,+0x2,0,0,0,0,0,0,0x\n"

	recs, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 100.0, recs[0].Calories)
	assert.Equal(t, 0.0, recs[0].Sodium)
	assert.Equal(t, 0.0, recs[0].SaturatedFat)
	assert.Equal(t, 0.0, recs[0].TransFat)
	assert.Equal(t, 0.0, recs[0].Calcium)
}

func TestParseReader(t *testing.T) {
	recs, err := ParseReader(strings.NewReader(canonicalCSV))
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestNutrientTable(t *testing.T) {
	r := FoodRecord{Sodium: 1, SaturatedFat: 2, TransFat: 3, Cholesterol: 4, Sugars: 5,
		Fiber: 6, Protein: 7, VitaminA: 8, VitaminC: 9, Calcium: 10}

	for i, n := range AllNutrients {
		if got := n.Value(r); got != float64(i+1) {
			t.Errorf("%s: expected %d, got %f", n, i+1, got)
		}
	}
	for i, n := range AllNutrients {
		if want := i < 5; n.IsBad() != want {
			t.Errorf("%s: IsBad=%v, want %v", n, n.IsBad(), want)
		}
	}
	if Calcium.String() != "calcium" {
		t.Errorf("expected calcium, got %s", Calcium)
	}
}
