package dataset

import (
	"slices"
	"sort"
)

// CrimeRecord is one row of the crime incident source.
type CrimeRecord struct {
	District  string `json:"district"`
	Year      int    `json:"year"` // 0 when the year cell did not parse
	CrimeType string `json:"crimeType"`
	Category  string `json:"category"`
	Count     Value  `json:"count"`
}

// CrimeTable is the loaded crime source. It is never mutated after NewCrimeTable.
type CrimeTable struct {
	records   []CrimeRecord
	districts []string
}

// NewCrimeTable takes ownership of records.
func NewCrimeTable(records []CrimeRecord) *CrimeTable {
	t := &CrimeTable{records: records}
	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.District]; ok {
			continue
		}
		seen[r.District] = struct{}{}
		t.districts = append(t.districts, r.District)
	}
	return t
}

// Len returns the number of records.
func (t *CrimeTable) Len() int { return len(t.records) }

// Records returns a copy of all records in source order.
func (t *CrimeTable) Records() []CrimeRecord { return slices.Clone(t.records) }

// Districts returns the distinct districts in first-appearance order.
func (t *CrimeTable) Districts() []string { return slices.Clone(t.districts) }

// DistrictSet returns the district universe as a set.
func (t *CrimeTable) DistrictSet() map[string]struct{} {
	out := make(map[string]struct{}, len(t.districts))
	for _, d := range t.districts {
		out[d] = struct{}{}
	}
	return out
}

// Years returns the distinct parsed years, newest first.
func (t *CrimeTable) Years() []int {
	seen := map[int]struct{}{}
	var out []int
	for _, r := range t.records {
		if r.Year == 0 {
			continue
		}
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Categories returns the distinct categories in first-appearance order.
func (t *CrimeTable) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range t.records {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}

// Select returns the records matching year, crime type and category.
func (t *CrimeTable) Select(year int, crimeType, category string) []CrimeRecord {
	var out []CrimeRecord
	for _, r := range t.records {
		if r.Year == year && r.CrimeType == crimeType && r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
