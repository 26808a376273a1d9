// Package source loads and cleans the crime, camera and household tables.
package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
)

// DefaultYearPattern matches camera year columns such as "2020년".
const DefaultYearPattern = `년`

// ColumnRule selects columns by label.
type ColumnRule struct {
	re *regexp.Regexp
}

// NewColumnRule compiles a label pattern.
func NewColumnRule(pattern string) (ColumnRule, error) {
	if strings.TrimSpace(pattern) == "" {
		return ColumnRule{}, fmt.Errorf("empty column pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ColumnRule{}, fmt.Errorf("compile column pattern: %w", err)
	}
	return ColumnRule{re: re}, nil
}

// MustColumnRule is NewColumnRule for constant patterns.
func MustColumnRule(pattern string) ColumnRule {
	r, err := NewColumnRule(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Match reports whether label satisfies the rule.
func (r ColumnRule) Match(label string) bool {
	if r.re == nil {
		return false
	}
	return r.re.MatchString(label)
}

// Select returns the indexes of matching labels in header order.
func (r ColumnRule) Select(header []string) []int {
	var out []int
	for i, h := range header {
		if r.Match(h) {
			out = append(out, i)
		}
	}
	return out
}

func (r ColumnRule) String() string {
	if r.re == nil {
		return ""
	}
	return r.re.String()
}

// header maps column labels to indexes. The first occurrence of a label wins.
type header struct {
	labels []string
	index  map[string]int
}

func newHeader(raw []string) header {
	h := header{labels: make([]string, len(raw)), index: make(map[string]int, len(raw))}
	for i, c := range raw {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		h.labels[i] = c
		if _, ok := h.index[c]; !ok {
			h.index[c] = i
		}
	}
	return h
}

func (h header) rename(from, to string) {
	i, ok := h.index[from]
	if !ok {
		return
	}
	delete(h.index, from)
	h.labels[i] = to
	if _, exists := h.index[to]; !exists {
		h.index[to] = i
	}
}

func (h header) require(cols ...string) ([]int, error) {
	out := make([]int, len(cols))
	for i, c := range cols {
		idx, ok := h.index[c]
		if !ok {
			return nil, &dataset.MissingColumnError{Column: c, Header: h.labels}
		}
		out[i] = idx
	}
	return out, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
