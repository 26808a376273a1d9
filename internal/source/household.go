package source

import (
	"sort"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
)

// Household source defaults and column labels.
const (
	DefaultHouseholdHeaderRow = 1

	householdColDistrict     = "동별(1)"
	householdColSinglePerson = "1인세대"
	householdColTotal        = "전체세대"

	colSinglePerson = "1인가구"
)

// HouseholdLoader reads the single-person household CSV and aggregates it
// to one row per district.
type HouseholdLoader struct {
	Path string
	// HeaderRow is the 0-indexed physical row holding the column labels.
	HeaderRow int
	memo      *memo
}

// NewHouseholdLoader returns a loader with the default header row.
func NewHouseholdLoader(path string) *HouseholdLoader {
	return &HouseholdLoader{Path: path, HeaderRow: DefaultHouseholdHeaderRow, memo: newMemo()}
}

type householdAcc struct {
	single float64
	total  float64
}

// Load returns the per-district aggregates ordered by district. Grand-total
// rows are dropped before summing.
func (l *HouseholdLoader) Load() (*dataset.HouseholdTable, error) {
	data, key, err := l.memo.read(l.Path, "")
	if err != nil {
		return nil, dataset.Unavailable("household", l.Path, err)
	}
	if v, ok := l.memo.get(key); ok {
		return v.(*dataset.HouseholdTable), nil
	}
	h, rows, err := readCSV(data, l.HeaderRow)
	if err != nil {
		return nil, dataset.Unavailable("household", l.Path, err)
	}
	h.rename(householdColDistrict, dataset.ColDistrict)
	h.rename(householdColSinglePerson, colSinglePerson)
	idx, err := h.require(dataset.ColDistrict, colSinglePerson, householdColTotal)
	if err != nil {
		return nil, dataset.Unavailable("household", l.Path, err)
	}

	groups := map[string]*householdAcc{}
	for _, rec := range rows {
		district := cell(rec, idx[0])
		// blank keys never form a group
		if district == "" || district == dataset.DistrictGrandTotal {
			continue
		}
		acc := groups[district]
		if acc == nil {
			acc = &householdAcc{}
			groups[district] = acc
		}
		// missing cells contribute nothing to the sums
		acc.single += dataset.ParseStrict(cell(rec, idx[1])).OrZero()
		acc.total += dataset.ParseStrict(cell(rec, idx[2])).OrZero()
	}

	districts := make([]string, 0, len(groups))
	for d := range groups {
		districts = append(districts, d)
	}
	sort.Strings(districts)
	out := make([]dataset.HouseholdAggregate, 0, len(districts))
	for _, d := range districts {
		acc := groups[d]
		out = append(out, dataset.HouseholdAggregate{
			District:               d,
			TotalHouseholds:        acc.total,
			SinglePersonHouseholds: acc.single,
			SinglePersonRatio:      ratioPercent(acc.single, acc.total),
		})
	}
	table := dataset.NewHouseholdTable(out)
	l.memo.put(l.Path, key, table)
	return table, nil
}

// Stats reports memo hits and misses.
func (l *HouseholdLoader) Stats() Stats { return l.memo.stats() }

// Reset drops memoized tables.
func (l *HouseholdLoader) Reset() { l.memo.reset() }

func ratioPercent(part, total float64) dataset.Value {
	if total == 0 {
		return dataset.Missing()
	}
	return dataset.Number(part / total * 100)
}
