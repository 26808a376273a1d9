package analysis

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeResult() *dataset.MergeResult {
	return &dataset.MergeResult{
		ReferenceYear: 2020,
		Rows: []dataset.MergedRow{
			{District: "강남구", Cameras: 2000, TotalHouseholds: 600, SinglePersonHouseholds: 150, SinglePersonRatio: 25, TotalCrimes: 300},
			{District: "서초구", Cameras: 1200, TotalHouseholds: 300, SinglePersonHouseholds: 60, SinglePersonRatio: 20, TotalCrimes: 200},
			{District: "송파구", Cameras: 800, TotalHouseholds: 200, SinglePersonHouseholds: 20, SinglePersonRatio: 10, TotalCrimes: 100},
		},
	}
}

func TestPearson(t *testing.T) {
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	assert.True(t, math.IsNaN(Pearson([]float64{1}, []float64{1})))
	assert.True(t, math.IsNaN(Pearson([]float64{5, 5, 5}, []float64{1, 2, 3})))
	assert.InDelta(t, 1.0, Pearson([]float64{1, math.NaN(), 2, 3}, []float64{1, 9, 2, 3}), 1e-12)
}

func TestStrengthOf(t *testing.T) {
	cases := []struct {
		r    float64
		want Strength
	}{
		{0.9, StrengthStrong},
		{-0.51, StrengthStrong},
		{0.5, StrengthWeak},
		{-0.3, StrengthWeak},
		{0.2, StrengthNegligible},
		{0, StrengthNegligible},
		{math.NaN(), StrengthNegligible},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StrengthOf(tc.r), "r=%v", tc.r)
	}
}

func TestCorrelate(t *testing.T) {
	m := mergeResult()
	c, err := Correlate(m, dataset.CameraSummaryLabel(2020), dataset.CrimeTotalLabel(2020))
	require.NoError(t, err)
	assert.Equal(t, 3, c.N)
	require.True(t, c.R.Valid)
	assert.Greater(t, c.R.Float, 0.9)
	assert.Equal(t, StrengthStrong, c.Strength)
	require.Len(t, c.Points, 3)
	assert.Equal(t, Point{District: "강남구", X: 2000, Y: 300}, c.Points[0])

	md := c.Markdown()
	assert.True(t, strings.HasPrefix(md, "[CORRELATION]\n"))
	assert.Contains(t, md, "(strong)")
}

func TestCorrelate_ArgumentErrors(t *testing.T) {
	m := mergeResult()
	_, err := Correlate(m, dataset.ColTotalHouseholds, dataset.ColTotalHouseholds)
	assert.ErrorIs(t, err, ErrSameAxis)
	_, err = Correlate(m, "인구", dataset.ColTotalHouseholds)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestCorrelate_ConstantColumnUndefined(t *testing.T) {
	m := mergeResult()
	m.Degraded = true
	for i := range m.Rows {
		m.Rows[i].Cameras = 0
	}
	c, err := Correlate(m, dataset.CameraSummaryLabel(2020), dataset.CrimeTotalLabel(2020))
	require.NoError(t, err)
	assert.False(t, c.R.Valid)
	assert.Equal(t, StrengthNegligible, c.Strength)
	assert.Contains(t, c.Markdown(), "[WARNINGS]")
}

func TestMergedOutputs(t *testing.T) {
	m := mergeResult()
	m.Warnings = []string{"duplicate crime row for 강남구 ignored"}
	md := MergedMarkdown(m)
	assert.Contains(t, md, "Reference year: 2020")
	assert.Contains(t, md, "| 강남구 | 2000 | 600 | 150 | 25 | 300 |")
	assert.Contains(t, md, "[WARNINGS]")

	var buf bytes.Buffer
	require.NoError(t, WriteMergedCSV(&buf, m))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "자치구,CCTV 총대수(2020년),전체세대_합,일인가구_합,1인가구_비율(%),2020_총범죄_발생건수", lines[0])
}
