package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2020, c.ReferenceYear)
	assert.Equal(t, 2, c.CameraHeaderRow)
	assert.Equal(t, 1, c.HouseholdHeaderRow)
	assert.Equal(t, "년", c.CameraYearPattern)
	assert.Equal(t, "crime_data_tidy.csv", c.CrimePath)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crime_path: /data/crime.csv\nreference_year: 2019\n"), 0o644))
	t.Setenv("DISTRICTLENS_REFERENCE_YEAR", "2021")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/crime.csv", c.CrimePath)
	assert.Equal(t, 2021, c.ReferenceYear, "env overrides file")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(path)
	require.NoError(t, err)
	c.HouseholdPath = "/data/household.csv"
	require.NoError(t, Save(c, path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestValidate(t *testing.T) {
	c := &Global{ReferenceYear: 2020, CameraYearPattern: "년"}
	require.NoError(t, c.Validate())
	c.CameraHeaderRow = -1
	assert.Error(t, c.Validate())
	c.CameraHeaderRow = 0
	c.ReferenceYear = 0
	assert.Error(t, c.Validate())
}
