// Package classifier wraps the tree-ensemble model the experiment scores
// with behind a small fit/predict interface, so the evaluation loop never
// depends on a concrete implementation.
package classifier

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
)

// Classifier is the capability the evaluation loop trains and queries.
type Classifier interface {
	Fit(x [][]float64, y []int) error
	Predict(x [][]float64) ([]int, error)
}

// Factory builds a fresh, untrained classifier. The scoring procedure uses
// it to get an independent model per cross-validation fold.
type Factory func() Classifier

// Forest is a random-forest classifier with a fixed number of trees.
type Forest struct {
	trees  int
	forest *randomforest.Forest
}

// NewForest creates an untrained forest with the given number of trees.
func NewForest(trees int) *Forest {
	return &Forest{trees: trees}
}

// NewForestFactory returns a Factory producing forests of the given size.
func NewForestFactory(trees int) Factory {
	return func() Classifier { return NewForest(trees) }
}

// Fit trains the forest. Labels must be dense integer codes starting at 0.
func (f *Forest) Fit(x [][]float64, y []int) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d rows, %d labels", len(x), len(y))
	}
	for _, label := range y {
		if label < 0 {
			return fmt.Errorf("labels must be non-negative codes, got %d", label)
		}
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(f.trees)
	f.forest = forest
	return nil
}

// Predict returns the majority-vote class for each row.
func (f *Forest) Predict(x [][]float64) ([]int, error) {
	if f.forest == nil {
		return nil, fmt.Errorf("forest is not trained")
	}
	out := make([]int, len(x))
	for i, row := range x {
		votes := f.forest.Vote(row)
		best, bestV := 0, -1.0
		for class, v := range votes {
			if v > bestV {
				best, bestV = class, v
			}
		}
		out[i] = best
	}
	return out, nil
}
