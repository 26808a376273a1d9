// Package dataset holds the district-keyed tables produced by the loaders and
// the merger, plus the sentinel values and labels shared by every source.
package dataset

import "fmt"

// Categorical sentinels defined by the sources.
const (
	// CrimeTypeSubtotal is the crime type carrying the total across all types.
	CrimeTypeSubtotal = "소계"
	// DistrictGrandTotal marks city-wide total rows in the household source.
	DistrictGrandTotal = "합계"
	// CategoryOccurred is the crime category counting occurrences.
	CategoryOccurred = "발생"
)

// Canonical column labels.
const (
	ColDistrict               = "자치구"
	ColTotalHouseholds        = "전체세대_합"
	ColSinglePersonHouseholds = "일인가구_합"
	ColSinglePersonRatio      = "1인가구_비율(%)"
)

// DefaultReferenceYear anchors the cross-dataset merge.
const DefaultReferenceYear = 2020

// YearLabel is the camera column label for a year, e.g. "2020년".
func YearLabel(year int) string { return fmt.Sprintf("%d년", year) }

// CameraSummaryLabel names the merged camera column for the reference year.
func CameraSummaryLabel(year int) string { return fmt.Sprintf("CCTV 총대수(%d년)", year) }

// CrimeTotalLabel names the merged crime column for the reference year.
func CrimeTotalLabel(year int) string { return fmt.Sprintf("%d_총범죄_발생건수", year) }
