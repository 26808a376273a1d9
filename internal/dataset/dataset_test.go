package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	cases := map[string]Value{
		"1,234":   Number(1234),
		" 2,000 ": Number(2000),
		"1 234":   Missing(),
		"  56 ":   Number(56),
		"":        Missing(),
		"-":       Missing(),
		"N/A":     Missing(),
		"3.5":     Number(3.5),
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseCount(in), "input %q", in)
	}
}

func TestParseStrict_KeepsSeparatorsInvalid(t *testing.T) {
	assert.Equal(t, Missing(), ParseStrict("1,234"))
	assert.Equal(t, Number(42), ParseStrict(" 42 "))
	assert.Equal(t, Missing(), ParseStrict("NaN"))
}

func TestValueJSON(t *testing.T) {
	b, err := json.Marshal([]Value{Number(1.5), Missing()})
	require.NoError(t, err)
	assert.Equal(t, "[1.5,null]", string(b))

	var back []Value
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []Value{Number(1.5), Missing()}, back)
	assert.Equal(t, 0.0, Missing().OrZero())
	assert.Equal(t, Missing(), Number(math.Inf(1)))
}

func TestSourceUnavailableError(t *testing.T) {
	err := fmt.Errorf("load: %w", Unavailable("crime", "crime.csv", fs.ErrNotExist))
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	var se *SourceUnavailableError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "crime", se.Source)
	assert.Contains(t, err.Error(), "crime.csv")
}

func TestCrimeTable(t *testing.T) {
	tbl := NewCrimeTable([]CrimeRecord{
		{District: "B", Year: 2019, CrimeType: CrimeTypeSubtotal, Category: CategoryOccurred, Count: Number(1)},
		{District: "A", Year: 2020, CrimeType: CrimeTypeSubtotal, Category: "검거", Count: Number(2)},
		{District: "B", Year: 0, CrimeType: "절도", Category: CategoryOccurred, Count: Number(3)},
		{District: "A", Year: 2020, CrimeType: CrimeTypeSubtotal, Category: CategoryOccurred, Count: Number(4)},
	})
	assert.Equal(t, []string{"B", "A"}, tbl.Districts())
	assert.Equal(t, []int{2020, 2019}, tbl.Years())
	assert.Equal(t, []string{CategoryOccurred, "검거"}, tbl.Categories())
	sel := tbl.Select(2020, CrimeTypeSubtotal, CategoryOccurred)
	require.Len(t, sel, 1)
	assert.Equal(t, Number(4), sel[0].Count)
	assert.Len(t, tbl.DistrictSet(), 2)
}

func TestCameraTable_FirstDuplicateWins(t *testing.T) {
	tbl := NewCameraTable([]string{"2020년"}, []CameraRecord{
		{District: "A", Counts: map[string]Value{"2020년": Number(10)}},
		{District: "A", Counts: map[string]Value{"2020년": Number(99)}},
		{District: "B", Counts: map[string]Value{}},
	})
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, Number(10), tbl.Value("A", "2020년"))
	assert.Equal(t, Missing(), tbl.Value("B", "2020년"))
	col, ok := tbl.Column("2020년")
	require.True(t, ok)
	assert.Equal(t, []Value{Number(10), Missing()}, col)
	assert.Len(t, tbl.Warnings(), 1)
	_, ok = tbl.Column("2019년")
	assert.False(t, ok)
}

func TestMergeResultColumns(t *testing.T) {
	m := &MergeResult{ReferenceYear: 2020, Rows: []MergedRow{{District: "A", Cameras: 1, TotalCrimes: 7}}}
	assert.Equal(t, "CCTV 총대수(2020년)", m.Columns()[0])
	assert.Equal(t, "2020_총범죄_발생건수", m.Columns()[4])
	crimes, ok := m.Column(CrimeTotalLabel(2020))
	require.True(t, ok)
	assert.Equal(t, []float64{7}, crimes)
	_, ok = m.Column("nope")
	assert.False(t, ok)
}
