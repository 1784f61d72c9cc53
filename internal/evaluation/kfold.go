// Package evaluation provides k-fold partitioning, cross-validated scoring
// and the accuracy/confusion arithmetic the experiment reports.
package evaluation

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrInsufficientSamples is returned when a class is too small to appear in
// every stratified fold.
var ErrInsufficientSamples = errors.New("not enough samples per class for stratification")

// StratifiedKFold partitions row indices into k folds that each preserve the
// overall class proportions.
type StratifiedKFold struct {
	Folds int
	Seed  int64
}

// Split returns the test-index sets of each fold, stratified over y.
func (s StratifiedKFold) Split(y []int) ([][]int, error) {
	if s.Folds < 2 || s.Folds > len(y) {
		return nil, fmt.Errorf("invalid number of folds: %d (must be between 2 and %d)", s.Folds, len(y))
	}

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	for label, idx := range byClass {
		if len(idx) < s.Folds {
			return nil, fmt.Errorf("class %d has %d samples, need at least %d: %w",
				label, len(idx), s.Folds, ErrInsufficientSamples)
		}
	}

	// deterministic class order, then shuffle within each class and deal
	// the indices round-robin across folds
	classes := make([]int, 0, len(byClass))
	for label := range byClass {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(s.Seed))
	folds := make([][]int, s.Folds)
	for _, label := range classes {
		idx := byClass[label]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for i, row := range idx {
			f := i % s.Folds
			folds[f] = append(folds[f], row)
		}
	}
	return folds, nil
}
