// Package resample provides class-rebalancing strategies for imbalanced
// training sets. Every strategy satisfies the same contract: given an
// index-aligned feature matrix and label vector it returns a new, more
// balanced pair, leaving its inputs untouched. Synthetic rows are appended
// after the original rows.
package resample

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInsufficientSamples is returned when a class is too small for a
// strategy's nearest-neighbour parameter.
var ErrInsufficientSamples = errors.New("not enough samples in class")

// Resampler produces a class-rebalanced copy of a dataset.
type Resampler interface {
	Name() string
	Resample(x [][]float64, y []string) ([][]float64, []string, error)
}

// Original is the identity baseline: it returns its inputs unchanged.
type Original struct{}

func (Original) Name() string { return "Original" }

func (Original) Resample(x [][]float64, y []string) ([][]float64, []string, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("feature matrix has %d rows, labels have %d", len(x), len(y))
	}
	return x, y, nil
}

// classGroups splits row indices by label, preserving first-appearance order
// of the classes.
func classGroups(y []string) ([]string, map[string][]int) {
	order := make([]string, 0)
	groups := make(map[string][]int)
	for i, label := range y {
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], i)
	}
	return order, groups
}

// majorityCount returns the size of the largest class.
func majorityCount(groups map[string][]int) int {
	max := 0
	for _, idx := range groups {
		if len(idx) > max {
			max = len(idx)
		}
	}
	return max
}

// gather copies the rows at the given indices into a dense slice.
func gather(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

// interpolate returns a + gap*(b-a) as a new row.
func interpolate(a, b []float64, gap float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + gap*(b[i]-a[i])
	}
	return out
}

// extrapolate returns a + gap*(a-b) as a new row, stepping away from b.
func extrapolate(a, b []float64, gap float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + gap*(a[i]-b[i])
	}
	return out
}

// appendResampled copies the original pair into fresh slices sized for the
// expected number of synthetic additions.
func appendResampled(x [][]float64, y []string, extra int) ([][]float64, []string) {
	outX := make([][]float64, len(x), len(x)+extra)
	copy(outX, x)
	outY := make([]string, len(y), len(y)+extra)
	copy(outY, y)
	return outX, outY
}

func checkAligned(x [][]float64, y []string) error {
	if len(x) != len(y) {
		return fmt.Errorf("feature matrix has %d rows, labels have %d", len(x), len(y))
	}
	if len(x) == 0 {
		return fmt.Errorf("empty dataset")
	}
	return nil
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
