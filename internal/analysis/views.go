// Package analysis turns the pipeline tables into the filtered, sorted views
// and the correlation summary shown to analysts.
package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
)

var (
	// ErrUnknownColumn is returned when a requested column does not exist.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnknownMetric is returned for an unsupported household metric.
	ErrUnknownMetric = errors.New("unknown metric")
)

// DistrictValue is one bar of a district view.
type DistrictValue struct {
	District string        `json:"district"`
	Value    dataset.Value `json:"value"`
}

// View is a per-district series sorted by value, largest first, with missing
// values last.
type View struct {
	Title      string          `json:"title"`
	ValueLabel string          `json:"valueLabel"`
	Rows       []DistrictValue `json:"rows"`
}

// CrimeOptions are the selectable dimensions of the crime view.
type CrimeOptions struct {
	Years      []int    `json:"years"`
	CrimeTypes []string `json:"crimeTypes"`
	Categories []string `json:"categories"`
}

// CrimeChoices lists years newest first, the concrete crime types, and the
// categories in source order.
func CrimeChoices(t *dataset.CrimeTable, crimeTypes []string) CrimeOptions {
	return CrimeOptions{Years: t.Years(), CrimeTypes: append([]string(nil), crimeTypes...), Categories: t.Categories()}
}

// Defaults returns the initial selection: the newest year, the first crime
// type and the first category. Missing dimensions fall back to 0, "" and 발생.
func (o CrimeOptions) Defaults() (year int, crimeType, category string) {
	category = dataset.CategoryOccurred
	if len(o.Years) > 0 {
		year = o.Years[0]
	}
	if len(o.CrimeTypes) > 0 {
		crimeType = o.CrimeTypes[0]
	}
	if len(o.Categories) > 0 {
		category = o.Categories[0]
	}
	return year, crimeType, category
}

// CrimeView selects the counts for one year, crime type and category.
func CrimeView(t *dataset.CrimeTable, year int, crimeType, category string) *View {
	recs := t.Select(year, crimeType, category)
	rows := make([]DistrictValue, len(recs))
	for i, r := range recs {
		rows[i] = DistrictValue{District: r.District, Value: r.Count}
	}
	sortDesc(rows)
	return &View{
		Title:      fmt.Sprintf("%d년 %s (%s) 건수", year, crimeType, category),
		ValueLabel: "건수",
		Rows:       rows,
	}
}

// CameraYears lists the camera year columns, latest label first.
func CameraYears(t *dataset.CameraTable) []string {
	years := t.YearColumns()
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// CameraView returns the installed camera count per district for a year column.
func CameraView(t *dataset.CameraTable, yearLabel string) (*View, error) {
	col, ok := t.Column(yearLabel)
	if !ok {
		return nil, fmt.Errorf("%w: camera year %q (have %v)", ErrUnknownColumn, yearLabel, t.YearColumns())
	}
	districts := t.Districts()
	rows := make([]DistrictValue, len(col))
	for i, v := range col {
		rows[i] = DistrictValue{District: districts[i], Value: v}
	}
	sortDesc(rows)
	return &View{
		Title:      fmt.Sprintf("'%s' 범죄예방 수사용 CCTV 자치구별 총 대수", yearLabel),
		ValueLabel: "CCTV 대수",
		Rows:       rows,
	}, nil
}

// HouseholdMetric selects the household view series.
type HouseholdMetric string

const (
	MetricSinglePersonCount HouseholdMetric = "count"
	MetricSinglePersonRatio HouseholdMetric = "ratio"
)

// HouseholdView returns single-person household counts or ratios per district.
func HouseholdView(t *dataset.HouseholdTable, metric HouseholdMetric) (*View, error) {
	v := &View{}
	switch metric {
	case MetricSinglePersonCount, "":
		v.Title, v.ValueLabel = "자치구별 1인가구 수", dataset.ColSinglePersonHouseholds
	case MetricSinglePersonRatio:
		v.Title, v.ValueLabel = "자치구별 1인가구 비율 (%)", dataset.ColSinglePersonRatio
	default:
		return nil, fmt.Errorf("%w: %q (use count|ratio)", ErrUnknownMetric, metric)
	}
	for _, r := range t.Rows() {
		val := dataset.Number(r.SinglePersonHouseholds)
		if v.ValueLabel == dataset.ColSinglePersonRatio {
			val = r.SinglePersonRatio
		}
		v.Rows = append(v.Rows, DistrictValue{District: r.District, Value: val})
	}
	sortDesc(v.Rows)
	return v, nil
}

func sortDesc(rows []DistrictValue) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Value, rows[j].Value
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Float > b.Float
	})
}
