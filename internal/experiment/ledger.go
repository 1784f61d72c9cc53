// Package experiment drives the resampling-evaluation loop: every strategy
// is applied to every label variant, the rebalanced set is scored under
// cross-validation, and the results accumulate in an insertion-ordered
// ledger for comparison.
package experiment

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey indicates a (strategy, label) pair was recorded twice in
// one run. The loop structure guarantees uniqueness, so hitting this is a
// logic error, not an input problem.
var ErrDuplicateKey = errors.New("duplicate ledger key")

// Key identifies one evaluation: a strategy applied under one label variant.
type Key struct {
	Strategy string `json:"strategy"`
	Label    string `json:"label"`
}

// Result holds the metrics of one evaluation. It is immutable after
// creation.
type Result struct {
	Key
	MeanAccuracy  float64   `json:"meanAccuracy"`
	StdAccuracy   float64   `json:"stdAccuracy"`
	FoldScores    []float64 `json:"foldScores"`
	ResampledRows int       `json:"resampledRows"`
	Predicted     []string  `json:"-"`
}

// Ledger accumulates results in insertion order.
type Ledger struct {
	keys    []Key
	entries map[Key]Result
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[Key]Result)}
}

// Record stores a result under its key. Recording the same key twice fails.
func (l *Ledger) Record(result Result) error {
	if _, ok := l.entries[result.Key]; ok {
		return fmt.Errorf("%s/%s: %w", result.Strategy, result.Label, ErrDuplicateKey)
	}
	l.keys = append(l.keys, result.Key)
	l.entries[result.Key] = result
	return nil
}

// Get returns the result recorded under the given key.
func (l *Ledger) Get(strategy, label string) (Result, bool) {
	r, ok := l.entries[Key{Strategy: strategy, Label: label}]
	return r, ok
}

// All returns every result in insertion order.
func (l *Ledger) All() []Result {
	out := make([]Result, len(l.keys))
	for i, k := range l.keys {
		out[i] = l.entries[k]
	}
	return out
}

// Len returns the number of recorded results.
func (l *Ledger) Len() int { return len(l.keys) }
