package dataset

import "slices"

// MergedRow is the district-level join of camera, household and crime data.
// Every field is zero-filled when its join input had no value, so a zero does
// not distinguish "no data" from a true zero.
type MergedRow struct {
	District               string  `json:"district"`
	Cameras                float64 `json:"cameras"`
	TotalHouseholds        float64 `json:"totalHouseholds"`
	SinglePersonHouseholds float64 `json:"singlePersonHouseholds"`
	SinglePersonRatio      float64 `json:"singlePersonRatio"`
	TotalCrimes            float64 `json:"totalCrimes"`
}

// MergeResult is the merged table plus the degraded-analysis signal.
type MergeResult struct {
	ReferenceYear int         `json:"referenceYear"`
	Rows          []MergedRow `json:"rows"`
	// Degraded is set when the camera column for ReferenceYear was absent
	// and a zero column was substituted.
	Degraded bool     `json:"degraded"`
	Warnings []string `json:"warnings,omitempty"`
}

// Columns returns the analysis column labels, district excluded, in merge order.
func (m *MergeResult) Columns() []string {
	return []string{
		CameraSummaryLabel(m.ReferenceYear),
		ColTotalHouseholds,
		ColSinglePersonHouseholds,
		ColSinglePersonRatio,
		CrimeTotalLabel(m.ReferenceYear),
	}
}

// Column returns the values of an analysis column aligned with Rows.
func (m *MergeResult) Column(label string) ([]float64, bool) {
	idx := slices.Index(m.Columns(), label)
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(m.Rows))
	for i, r := range m.Rows {
		switch idx {
		case 0:
			out[i] = r.Cameras
		case 1:
			out[i] = r.TotalHouseholds
		case 2:
			out[i] = r.SinglePersonHouseholds
		case 3:
			out[i] = r.SinglePersonRatio
		case 4:
			out[i] = r.TotalCrimes
		}
	}
	return out, true
}

// Districts returns the merged districts in row order.
func (m *MergeResult) Districts() []string {
	out := make([]string, len(m.Rows))
	for i, r := range m.Rows {
		out[i] = r.District
	}
	return out
}
