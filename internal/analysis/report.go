package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
)

// Markdown renders the view as a titled two-column table.
func (v *View) Markdown() string {
	var b strings.Builder
	b.WriteString("[VIEW]\n")
	b.WriteString(fmt.Sprintf("%s\n", safeVal(v.Title)))
	b.WriteString(fmt.Sprintf("Districts: %d\n\n", len(v.Rows)))
	b.WriteString(fmt.Sprintf("| %s | %s |\n| --- | ---: |\n", dataset.ColDistrict, safeVal(v.ValueLabel)))
	for _, r := range v.Rows {
		b.WriteString(fmt.Sprintf("| %s | %s |\n", safeVal(r.District), formatValue(r.Value)))
	}
	return b.String()
}

// MergedMarkdown renders the merged table with its warnings.
func MergedMarkdown(m *dataset.MergeResult) string {
	var b strings.Builder
	b.WriteString("[MERGED]\n")
	b.WriteString(fmt.Sprintf("Reference year: %d\n", m.ReferenceYear))
	b.WriteString(fmt.Sprintf("Districts: %d\n\n", len(m.Rows)))
	cols := m.Columns()
	b.WriteString("| " + dataset.ColDistrict)
	for _, c := range cols {
		b.WriteString(" | " + safeVal(c))
	}
	b.WriteString(" |\n| ---" + strings.Repeat(" | ---:", len(cols)) + " |\n")
	for i, d := range m.Districts() {
		b.WriteString("| " + safeVal(d))
		for _, c := range cols {
			vals, _ := m.Column(c)
			b.WriteString(" | " + formatNumber(vals[i]))
		}
		b.WriteString(" |\n")
	}
	writeWarnings(&b, m.Warnings)
	return b.String()
}

// Markdown renders the coefficient, its strength and the analyst message.
func (c *Correlation) Markdown() string {
	var b strings.Builder
	b.WriteString("[CORRELATION]\n")
	b.WriteString(fmt.Sprintf("X: %s\nY: %s\nDistricts: %d\n", safeVal(c.X), safeVal(c.Y), c.N))
	b.WriteString(fmt.Sprintf("Pearson r: %s (%s)\n", formatCoefficient(c.R), c.Strength))
	b.WriteString(c.Strength.Message() + "\n")
	if c.Degraded {
		writeWarnings(&b, []string{"camera column for the reference year is missing; cameras are zero-filled"})
	}
	return b.String()
}

func writeWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("\n[WARNINGS]\n")
	for _, w := range warnings {
		b.WriteString("- " + safeVal(w) + "\n")
	}
}

func formatValue(v dataset.Value) string {
	if !v.Valid {
		return "-"
	}
	return formatNumber(v.Float)
}

// formatNumber prints counts without a fraction and ratios with two decimals.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatCoefficient(v dataset.Value) string {
	if !v.Valid {
		return "undefined"
	}
	return strconv.FormatFloat(v.Float, 'f', 4, 64)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
