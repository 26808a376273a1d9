package source

import (
	"math"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
)

// Crime source column labels.
const (
	crimeColDistrict = dataset.ColDistrict
	crimeColYear     = "연도"
	crimeColType     = "범죄유형"
	crimeColCategory = "구분"
	crimeColCount    = "건수"
)

// CrimeLoader reads the tidy crime incident CSV.
type CrimeLoader struct {
	Path string
	memo *memo
}

type crimeResult struct {
	table *dataset.CrimeTable
	types []string
}

// NewCrimeLoader returns a loader for path.
func NewCrimeLoader(path string) *CrimeLoader {
	return &CrimeLoader{Path: path, memo: newMemo()}
}

// Load returns the crime table and the distinct concrete crime types, the
// subtotal sentinel excluded, in first-appearance order.
func (l *CrimeLoader) Load() (*dataset.CrimeTable, []string, error) {
	data, key, err := l.memo.read(l.Path, "")
	if err != nil {
		return nil, nil, dataset.Unavailable("crime", l.Path, err)
	}
	if v, ok := l.memo.get(key); ok {
		res := v.(crimeResult)
		return res.table, append([]string(nil), res.types...), nil
	}
	h, rows, err := readCSV(data, 0)
	if err != nil {
		return nil, nil, dataset.Unavailable("crime", l.Path, err)
	}
	idx, err := h.require(crimeColDistrict, crimeColYear, crimeColType, crimeColCategory, crimeColCount)
	if err != nil {
		return nil, nil, dataset.Unavailable("crime", l.Path, err)
	}

	records := make([]dataset.CrimeRecord, 0, len(rows))
	seen := map[string]struct{}{}
	var types []string
	for _, rec := range rows {
		if cell(rec, idx[0]) == "" {
			continue
		}
		r := dataset.CrimeRecord{
			District:  cell(rec, idx[0]),
			Year:      parseYear(cell(rec, idx[1])),
			CrimeType: cell(rec, idx[2]),
			Category:  cell(rec, idx[3]),
			Count:     dataset.ParseCount(cell(rec, idx[4])),
		}
		records = append(records, r)
		if r.CrimeType == dataset.CrimeTypeSubtotal {
			continue
		}
		if _, ok := seen[r.CrimeType]; !ok {
			seen[r.CrimeType] = struct{}{}
			types = append(types, r.CrimeType)
		}
	}
	res := crimeResult{table: dataset.NewCrimeTable(records), types: types}
	l.memo.put(l.Path, key, res)
	return res.table, append([]string(nil), types...), nil
}

// Stats reports memo hits and misses.
func (l *CrimeLoader) Stats() Stats { return l.memo.stats() }

// Reset drops memoized tables.
func (l *CrimeLoader) Reset() { l.memo.reset() }

func parseYear(s string) int {
	v := dataset.ParseStrict(s)
	if !v.Valid || v.Float != math.Trunc(v.Float) {
		return 0
	}
	return int(v.Float)
}
