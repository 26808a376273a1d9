package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
)

// ErrSameAxis is returned when both correlation axes name the same column.
var ErrSameAxis = errors.New("x and y must be different columns")

// Strength labels the magnitude of a correlation coefficient.
type Strength string

const (
	StrengthStrong     Strength = "strong"
	StrengthWeak       Strength = "weak"
	StrengthNegligible Strength = "negligible"
)

// StrengthOf applies the dashboard thresholds: |r| > 0.5 strong, |r| > 0.2
// weak, anything else (including an undefined r) negligible.
func StrengthOf(r float64) Strength {
	a := math.Abs(r)
	switch {
	case a > 0.5:
		return StrengthStrong
	case a > 0.2:
		return StrengthWeak
	default:
		return StrengthNegligible
	}
}

// Message is the analyst-facing sentence for the strength.
func (s Strength) Message() string {
	switch s {
	case StrengthStrong:
		return "상관계수 절댓값이 0.5 이상으로, 두 변수 간에 강한 관계가 보입니다."
	case StrengthWeak:
		return "상관계수 절댓값이 0.2~0.5 사이로, 약한 관계가 보입니다."
	default:
		return "상관계수 절댓값이 0.2 미만으로, 두 변수 간의 관계가 매우 약하거나 거의 없습니다."
	}
}

// Point is one district in the scatter view.
type Point struct {
	District string  `json:"district"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Correlation is the Pearson coefficient between two merged columns.
type Correlation struct {
	X        string        `json:"x"`
	Y        string        `json:"y"`
	N        int           `json:"n"`
	R        dataset.Value `json:"r"` // missing when undefined (n < 2 or zero variance)
	Strength Strength      `json:"strength"`
	Points   []Point       `json:"points"`
	Degraded bool          `json:"degraded"`
}

// Correlate computes the correlation between columns x and y of m.
func Correlate(m *dataset.MergeResult, x, y string) (*Correlation, error) {
	if x == y {
		return nil, ErrSameAxis
	}
	xs, ok := m.Column(x)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownColumn, x, m.Columns())
	}
	ys, ok := m.Column(y)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownColumn, y, m.Columns())
	}
	c := &Correlation{X: x, Y: y, N: len(xs), Degraded: m.Degraded}
	for i, d := range m.Districts() {
		c.Points = append(c.Points, Point{District: d, X: xs[i], Y: ys[i]})
	}
	r := Pearson(xs, ys)
	c.R = dataset.Number(r)
	c.Strength = StrengthOf(r)
	return c, nil
}

// Pearson returns the correlation coefficient of paired samples, or NaN when
// it is undefined. Pairs with a NaN on either side are skipped.
func Pearson(xs, ys []float64) float64 {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := 0; i < len(xs) && i < len(ys); i++ {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 2 {
		return math.NaN()
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 || math.IsNaN(denom) {
		return math.NaN()
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
