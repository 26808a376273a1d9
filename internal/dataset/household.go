package dataset

import "slices"

// HouseholdAggregate is the per-district sum of household sub-region rows.
type HouseholdAggregate struct {
	District               string  `json:"district"`
	TotalHouseholds        float64 `json:"totalHouseholds"`
	SinglePersonHouseholds float64 `json:"singlePersonHouseholds"`
	// SinglePersonRatio is missing when TotalHouseholds is zero.
	SinglePersonRatio Value `json:"singlePersonRatio"`
}

// HouseholdTable holds one aggregate per district, ordered by district.
type HouseholdTable struct {
	rows  []HouseholdAggregate
	index map[string]int
}

// NewHouseholdTable takes ownership of rows, which must be unique by district.
func NewHouseholdTable(rows []HouseholdAggregate) *HouseholdTable {
	t := &HouseholdTable{rows: rows, index: make(map[string]int, len(rows))}
	for i, r := range rows {
		t.index[r.District] = i
	}
	return t
}

// Len returns the number of districts.
func (t *HouseholdTable) Len() int { return len(t.rows) }

// Rows returns a copy of the aggregates.
func (t *HouseholdTable) Rows() []HouseholdAggregate { return slices.Clone(t.rows) }

// Lookup returns the aggregate for district.
func (t *HouseholdTable) Lookup(district string) (HouseholdAggregate, bool) {
	i, ok := t.index[district]
	if !ok {
		return HouseholdAggregate{}, false
	}
	return t.rows[i], true
}
