// Package features prepares the raw working table for modelling: symbolic
// columns are label-encoded to integers and the continuous columns are
// power-transformed toward a standard normal shape.
package features

import (
	"fmt"
	"sort"
)

// LabelEncoder maps categorical string values to dense integer codes.
// Classes are assigned codes in sorted order so encoding is deterministic
// across runs.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder creates an unfitted encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{index: make(map[string]int)}
}

// Fit learns the class set from the given values.
func (e *LabelEncoder) Fit(values []string) {
	seen := make(map[string]bool)
	e.classes = e.classes[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			e.classes = append(e.classes, v)
		}
	}
	sort.Strings(e.classes)
	e.index = make(map[string]int, len(e.classes))
	for i, c := range e.classes {
		e.index[c] = i
	}
}

// Transform encodes values using the fitted class set.
func (e *LabelEncoder) Transform(values []string) ([]int, error) {
	if len(e.classes) == 0 {
		return nil, fmt.Errorf("label encoder is not fitted")
	}
	out := make([]int, len(values))
	for i, v := range values {
		code, ok := e.index[v]
		if !ok {
			return nil, fmt.Errorf("unknown label %q", v)
		}
		out[i] = code
	}
	return out, nil
}

// FitTransform fits the encoder and encodes the same values.
func (e *LabelEncoder) FitTransform(values []string) ([]int, error) {
	e.Fit(values)
	return e.Transform(values)
}

// InverseTransform maps codes back to their class values.
func (e *LabelEncoder) InverseTransform(codes []int) ([]string, error) {
	out := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.classes) {
			return nil, fmt.Errorf("unknown code %d", c)
		}
		out[i] = e.classes[c]
	}
	return out, nil
}

// Classes returns the fitted class values in code order.
func (e *LabelEncoder) Classes() []string { return e.classes }
