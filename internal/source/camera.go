package source

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
	"github.com/xuri/excelize/v2"
)

// Camera source defaults.
const (
	DefaultCameraHeaderRow = 2
	cameraColDistrict      = "구분"
)

// CameraLoader reads the camera installation workbook.
type CameraLoader struct {
	Path string
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
	// HeaderRow is the 0-indexed physical row holding the column labels.
	HeaderRow int
	// YearColumns selects the per-year count columns.
	YearColumns ColumnRule
	memo        *memo
}

// NewCameraLoader returns a loader with the default header row and year rule.
func NewCameraLoader(path string) *CameraLoader {
	return &CameraLoader{
		Path:        path,
		HeaderRow:   DefaultCameraHeaderRow,
		YearColumns: MustColumnRule(DefaultYearPattern),
		memo:        newMemo(),
	}
}

// Load returns the camera table restricted to the districts in filter.
func (l *CameraLoader) Load(filter map[string]struct{}) (*dataset.CameraTable, error) {
	data, key, err := l.memo.read(l.Path, l.variant(filter))
	if err != nil {
		return nil, dataset.Unavailable("camera", l.Path, err)
	}
	if v, ok := l.memo.get(key); ok {
		return v.(*dataset.CameraTable), nil
	}
	rows, err := l.readRows(data)
	if err != nil {
		return nil, dataset.Unavailable("camera", l.Path, err)
	}
	if len(rows) <= l.HeaderRow {
		return nil, dataset.Unavailable("camera", l.Path,
			fmt.Errorf("header row %d not found: sheet has %d rows", l.HeaderRow, len(rows)))
	}
	h := newHeader(rows[l.HeaderRow])
	h.rename(cameraColDistrict, dataset.ColDistrict)
	idx, err := h.require(dataset.ColDistrict)
	if err != nil {
		return nil, dataset.Unavailable("camera", l.Path, err)
	}
	distCol := idx[0]

	var years []string
	var yearIdx []int
	seen := map[string]struct{}{}
	for _, i := range l.YearColumns.Select(h.labels) {
		label := h.labels[i]
		if i == distCol || label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		years = append(years, label)
		yearIdx = append(yearIdx, i)
	}

	var out []dataset.CameraRecord
	for _, rec := range rows[l.HeaderRow+1:] {
		district := cell(rec, distCol)
		if _, ok := filter[district]; !ok {
			continue
		}
		counts := make(map[string]dataset.Value, len(years))
		for k, i := range yearIdx {
			counts[years[k]] = dataset.ParseCount(cell(rec, i))
		}
		out = append(out, dataset.CameraRecord{District: district, Counts: counts})
	}
	table := dataset.NewCameraTable(years, out)
	l.memo.put(l.Path, key, table)
	return table, nil
}

// Stats reports memo hits and misses.
func (l *CameraLoader) Stats() Stats { return l.memo.stats() }

// Reset drops memoized tables.
func (l *CameraLoader) Reset() { l.memo.reset() }

func (l *CameraLoader) readRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// variant fingerprints everything besides file content that shapes the table.
func (l *CameraLoader) variant(filter map[string]struct{}) string {
	ds := make([]string, 0, len(filter))
	for d := range filter {
		ds = append(ds, d)
	}
	sort.Strings(ds)
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s|%s", l.Sheet, l.HeaderRow, l.YearColumns, strings.Join(ds, "\x00"))))
	return hex.EncodeToString(sum[:8])
}
