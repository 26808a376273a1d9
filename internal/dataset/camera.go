package dataset

import (
	"maps"
	"slices"
)

// CameraRecord holds installed camera counts per year column for a district.
type CameraRecord struct {
	District string           `json:"district"`
	Counts   map[string]Value `json:"counts"`
}

// CameraTable is the cleaned camera installation source, one row per district.
type CameraTable struct {
	years    []string
	rows     []CameraRecord
	index    map[string]int
	warnings []string
}

// NewCameraTable builds a table from rows in source order. Later rows for an
// already seen district are dropped and reported in Warnings.
func NewCameraTable(years []string, rows []CameraRecord) *CameraTable {
	t := &CameraTable{years: slices.Clone(years), index: make(map[string]int, len(rows))}
	for _, r := range rows {
		if _, dup := t.index[r.District]; dup {
			t.warnings = append(t.warnings, "duplicate camera row for "+r.District+" ignored")
			continue
		}
		t.index[r.District] = len(t.rows)
		t.rows = append(t.rows, CameraRecord{District: r.District, Counts: maps.Clone(r.Counts)})
	}
	return t
}

// YearColumns returns the year column labels in source order.
func (t *CameraTable) YearColumns() []string { return slices.Clone(t.years) }

// HasColumn reports whether label is one of the year columns.
func (t *CameraTable) HasColumn(label string) bool { return slices.Contains(t.years, label) }

// Len returns the number of districts.
func (t *CameraTable) Len() int { return len(t.rows) }

// Districts returns the districts in source order.
func (t *CameraTable) Districts() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.District
	}
	return out
}

// Rows returns a deep copy of all rows.
func (t *CameraTable) Rows() []CameraRecord {
	out := make([]CameraRecord, len(t.rows))
	for i, r := range t.rows {
		out[i] = CameraRecord{District: r.District, Counts: maps.Clone(r.Counts)}
	}
	return out
}

// Value returns the count of district for the year column label.
func (t *CameraTable) Value(district, label string) Value {
	i, ok := t.index[district]
	if !ok {
		return Missing()
	}
	return t.rows[i].Counts[label]
}

// Column returns the values of a year column aligned with Districts.
func (t *CameraTable) Column(label string) ([]Value, bool) {
	if !t.HasColumn(label) {
		return nil, false
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Counts[label]
	}
	return out, true
}

// Warnings lists non-fatal cleaning notes.
func (t *CameraTable) Warnings() []string { return slices.Clone(t.warnings) }
