// Package testutil writes small source fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/districtlens-cli/internal/config"
	"github.com/xuri/excelize/v2"
)

// CrimeCSV covers three districts, two years and the subtotal sentinel.
const CrimeCSV = "\ufeff자치구,연도,범죄유형,구분,건수\n" +
	"강남구,2020,소계,발생,300\n" +
	"강남구,2020,절도,발생,120\n" +
	"강남구,2020,절도,검거,80\n" +
	"강남구,2019,소계,발생,280\n" +
	"서초구,2020,소계,발생,200\n" +
	"서초구,2020,절도,발생,90\n" +
	"송파구,2020,소계,발생,100\n" +
	"송파구,2020,절도,발생,N/A\n"

// HouseholdCSV has a metadata row, a grand-total row and sub-district rows.
const HouseholdCSV = "동별(1),동별(2),1인세대,전체세대\n" +
	"동별(1),동별(2),1인세대,전체세대\n" +
	"합계,소계,99999,99999\n" +
	"강남구,역삼1동,100,400\n" +
	"강남구,역삼2동,50,200\n" +
	"서초구,서초1동,60,300\n" +
	"송파구,잠실동,20,200\n"

// CameraHeader is the header row written by WriteCamera.
var CameraHeader = []any{"구분", "총계", "2019년", "2020년"}

// CameraRows are the data rows written by WriteCamera; "계" is outside the
// crime district universe.
var CameraRows = [][]any{
	{"계", "9,000", "4,000", "5,000"},
	{"강남구", "3,500", "1,500", "2,000"},
	{"서초구", "2,200", "1,000", "1,200"},
	{"송파구", "1,300", "500", "800"},
}

// WriteFile writes content under dir.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// WriteCamera writes a workbook whose header sits on the third physical row.
func WriteCamera(t *testing.T, dir string, header []any, rows [][]any) string {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	all := append([][]any{{"서울시 자치구 CCTV 설치현황"}, {"(단위: 대)"}, header}, rows...)
	for i, r := range all {
		row := r
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := wb.SetSheetRow(sheet, ref, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	path := filepath.Join(dir, "cctv.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// Sources writes the default fixtures into a temp dir and returns a config
// pointing at them.
func Sources(t *testing.T) *config.Global {
	t.Helper()
	dir := t.TempDir()
	return &config.Global{
		CrimePath:          WriteFile(t, dir, "crime.csv", CrimeCSV),
		CameraPath:         WriteCamera(t, dir, CameraHeader, CameraRows),
		CameraHeaderRow:    2,
		CameraYearPattern:  "년",
		HouseholdPath:      WriteFile(t, dir, "household.csv", HouseholdCSV),
		HouseholdHeaderRow: 1,
		ReferenceYear:      2020,
		ListenAddr:         ":0",
		WatchDebounceMs:    50,
		LogLevel:           "info",
	}
}
