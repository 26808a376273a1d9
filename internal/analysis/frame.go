package analysis

import (
	"fmt"
	"io"
	"math"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Frame converts the view into a two-column dataframe. Missing values become NaN.
func (v *View) Frame() dataframe.DataFrame {
	districts := make([]string, len(v.Rows))
	values := make([]float64, len(v.Rows))
	for i, r := range v.Rows {
		districts[i] = r.District
		values[i] = math.NaN()
		if r.Value.Valid {
			values[i] = r.Value.Float
		}
	}
	return dataframe.New(
		series.New(districts, series.String, dataset.ColDistrict),
		series.New(values, series.Float, v.ValueLabel),
	)
}

// MergedFrame converts the merged table into a dataframe with the canonical
// column labels.
func MergedFrame(m *dataset.MergeResult) dataframe.DataFrame {
	cols := []series.Series{series.New(m.Districts(), series.String, dataset.ColDistrict)}
	for _, label := range m.Columns() {
		vals, _ := m.Column(label)
		cols = append(cols, series.New(vals, series.Float, label))
	}
	return dataframe.New(cols...)
}

// WriteCSV writes the view as CSV with a header row.
func (v *View) WriteCSV(w io.Writer) error {
	return writeFrame(w, v.Frame())
}

// WriteMergedCSV writes the merged table as CSV with a header row.
func WriteMergedCSV(w io.Writer, m *dataset.MergeResult) error {
	return writeFrame(w, MergedFrame(m))
}

func writeFrame(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("build frame: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
