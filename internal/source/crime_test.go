package source

import (
	"errors"
	"testing"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrimeLoader_LoadTableAndTypes(t *testing.T) {
	l := NewCrimeLoader(writeFile(t, "crime.csv", crimeCSV))
	table, types, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 6, table.Len())
	assert.Equal(t, []string{"강남구", "서초구", "송파구"}, table.Districts())
	assert.ElementsMatch(t, []string{"절도", "폭력"}, types)
	assert.NotContains(t, types, dataset.CrimeTypeSubtotal)
	assert.Equal(t, []int{2020, 2019}, table.Years())
	assert.Equal(t, []string{"발생", "검거"}, table.Categories())

	recs := table.Records()
	assert.False(t, recs[4].Count.Valid, "non-numeric count becomes missing")
	assert.Equal(t, 1200.0, recs[5].Count.Float)
}

func TestCrimeLoader_BlankDistrictRowsSkipped(t *testing.T) {
	l := NewCrimeLoader(writeFile(t, "crime.csv", crimeCSV+",2020,소계,발생,5\n,,,,\n"))
	table, _, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 6, table.Len())
	assert.NotContains(t, table.Districts(), "")
	_, ok := table.DistrictSet()[""]
	assert.False(t, ok)
}

func TestCrimeLoader_MissingColumn(t *testing.T) {
	l := NewCrimeLoader(writeFile(t, "crime.csv", "자치구,연도,범죄유형,건수\n강남구,2020,소계,1\n"))
	_, _, err := l.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrSourceUnavailable))

	var mc *dataset.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "구분", mc.Column)
}

func TestCrimeLoader_MissingFile(t *testing.T) {
	_, _, err := NewCrimeLoader("/nonexistent/crime.csv").Load()
	var su *dataset.SourceUnavailableError
	require.True(t, errors.As(err, &su))
	assert.Equal(t, "crime", su.Source)
}
