// Package merge joins the cleaned camera, household and crime tables into one
// district-keyed table for cross-dataset analysis.
package merge

import (
	"fmt"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
)

// Merge left-joins household aggregates and the reference-year crime totals
// onto the camera districts, then zero-fills every missing cell.
//
// When camera has no column for referenceYear, every crime-universe district
// gets a zero camera count and the result is marked Degraded.
func Merge(camera *dataset.CameraTable, household *dataset.HouseholdTable, crime *dataset.CrimeTable, referenceYear int) *dataset.MergeResult {
	res := &dataset.MergeResult{ReferenceYear: referenceYear}

	label := dataset.YearLabel(referenceYear)
	type cameraSummary struct {
		district string
		count    dataset.Value
	}
	var summary []cameraSummary
	if camera.HasColumn(label) {
		col, _ := camera.Column(label)
		for i, d := range camera.Districts() {
			summary = append(summary, cameraSummary{district: d, count: col[i]})
		}
	} else {
		res.Degraded = true
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("camera data has no %q column; camera counts set to 0 and correlations may be inaccurate", label))
		for _, d := range crime.Districts() {
			summary = append(summary, cameraSummary{district: d, count: dataset.Number(0)})
		}
	}

	totals := map[string]dataset.Value{}
	for _, r := range crime.Select(referenceYear, dataset.CrimeTypeSubtotal, dataset.CategoryOccurred) {
		if _, dup := totals[r.District]; dup {
			res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate %d total crime row for %s ignored", referenceYear, r.District))
			continue
		}
		totals[r.District] = r.Count
	}

	res.Rows = make([]dataset.MergedRow, 0, len(summary))
	for _, s := range summary {
		row := dataset.MergedRow{District: s.district, Cameras: s.count.OrZero()}
		if h, ok := household.Lookup(s.district); ok {
			row.TotalHouseholds = h.TotalHouseholds
			row.SinglePersonHouseholds = h.SinglePersonHouseholds
			row.SinglePersonRatio = h.SinglePersonRatio.OrZero()
		}
		row.TotalCrimes = totals[s.district].OrZero()
		res.Rows = append(res.Rows, row)
	}
	return res
}
