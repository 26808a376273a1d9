package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const crimeCSV = "\ufeff자치구,연도,범죄유형,구분,건수\n" +
	"강남구,2020,소계,발생,100\n" +
	"강남구,2020,절도,발생,40\n" +
	"강남구,2020,폭력,검거,30\n" +
	"서초구,2020,소계,발생,80\n" +
	"서초구,2020,절도,발생,n/a\n" +
	"송파구,2019,소계,발생,\"1,200\"\n"

const householdCSV = "동별(1),동별(2),1인세대,전체세대\n" +
	"동별(1),동별(2),1인세대,전체세대\n" +
	"합계,소계,99999,99999\n" +
	"강남구,역삼1동,100,400\n" +
	"강남구,역삼2동,50,200\n" +
	"서초구,서초1동,30,120\n" +
	"서초구,서초2동,N/A,80\n" +
	"빈구,빈동,0,0\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeCameraWorkbook writes a workbook with two metadata rows above the header.
func writeCameraWorkbook(t *testing.T, header []any, rows ...[]any) string {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	meta := []any{"서울시 자치구 CCTV 설치현황"}
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &meta))
	unit := []any{"(단위: 대)"}
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &unit))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &header))
	for i, r := range rows {
		row := r
		cellRef, err := excelize.CoordinatesToCellName(1, 4+i)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "cctv.xlsx")
	require.NoError(t, wb.SaveAs(path))
	return path
}

func defaultCameraWorkbook(t *testing.T) string {
	t.Helper()
	return writeCameraWorkbook(t,
		[]any{"구분", "총계", "2019년", "2020년", "비고"},
		[]any{"계", "9,999", "5,000", "4,999", ""},
		[]any{"강남구", "3,000", "1,234", "N/A", "x"},
		[]any{"서초구", "2,000", "900", "1,100", ""},
		[]any{"송파구", "1,500", "700", "800", ""},
	)
}

func districtSet(ds ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(ds))
	for _, d := range ds {
		out[strings.TrimSpace(d)] = struct{}{}
	}
	return out
}
