package experiment

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"imbalance-bench/internal/classifier"
	"imbalance-bench/internal/evaluation"
	"imbalance-bench/internal/features"
	"imbalance-bench/internal/resample"
)

// LabelVariant is one target encoding of the dataset: a name and the label
// value per row, index-aligned with the feature matrix.
type LabelVariant struct {
	Name   string
	Values []string
}

// Sink receives the visual artifacts of a run. Rendering failures abort the
// run like any other error.
type Sink interface {
	ConfusionMatrix(actual, predicted []string, title string) error
	BarChart(classes []string, counts []int, title string) error
}

// Observer receives timing signals from the loop. A nil observer is valid.
type Observer interface {
	ObserveResample(strategy string, rows int, elapsed time.Duration)
	ObserveScore(strategy, label string, elapsed time.Duration)
}

// Experiment is the run context: the fixed preprocessed inputs, the strategy
// battery and the collaborators the loop drives. The feature matrix and
// label variants are shared read-only across all iterations; the ledger is
// the only mutable output.
type Experiment struct {
	X             [][]float64
	Labels        []LabelVariant
	Strategies    []resample.Resampler
	NewClassifier classifier.Factory
	Folds         int
	Seed          int64
	Sink          Sink
	Observer      Observer

	ledger *Ledger
}

// Ledger returns the accumulated results.
func (e *Experiment) Ledger() *Ledger {
	if e.ledger == nil {
		e.ledger = NewLedger()
	}
	return e.ledger
}

// Run executes the full strategy × label matrix in order: strategies outer,
// label variants inner, identity baseline first by construction of the
// strategy slice. The first failure aborts the run.
func (e *Experiment) Run() error {
	if len(e.X) == 0 {
		return fmt.Errorf("empty feature matrix")
	}
	if len(e.Strategies) == 0 {
		return fmt.Errorf("no strategies configured")
	}
	for _, variant := range e.Labels {
		if len(variant.Values) != len(e.X) {
			return fmt.Errorf("label %q has %d values, feature matrix has %d rows",
				variant.Name, len(variant.Values), len(e.X))
		}
	}

	ledger := e.Ledger()
	for _, strategy := range e.Strategies {
		for vi, variant := range e.Labels {
			start := time.Now()
			rx, ry, err := strategy.Resample(e.X, variant.Values)
			if err != nil {
				return fmt.Errorf("%s resample under %s: %w", strategy.Name(), variant.Name, err)
			}
			if e.Observer != nil {
				e.Observer.ObserveResample(strategy.Name(), len(rx), time.Since(start))
			}
			log.Info().
				Str("strategy", strategy.Name()).
				Str("label", variant.Name).
				Int("rows_before", len(e.X)).
				Int("rows_after", len(rx)).
				Dur("elapsed", time.Since(start)).
				Msg("resampled")

			result, err := e.score(strategy.Name(), variant, rx, ry)
			if err != nil {
				return fmt.Errorf("%s score under %s: %w", strategy.Name(), variant.Name, err)
			}
			if err := ledger.Record(result); err != nil {
				return err
			}

			// the fine-grained variant additionally gets a distribution
			// chart of the rebalanced counts
			if vi == 0 && e.Sink != nil {
				classes, counts := tally(ry)
				title := fmt.Sprintf("Re-weighted Count (%s)", variant.Name)
				if err := e.Sink.BarChart(classes, counts, title); err != nil {
					return fmt.Errorf("%s bar chart: %w", strategy.Name(), err)
				}
			}
		}
	}
	return nil
}

// score cross-validates a fresh classifier on the resampled pair, reporting
// mean/std fold accuracy and the cross-validated prediction vector. Scores
// and predictions share one stratified, seeded fold scheme.
func (e *Experiment) score(strategyName string, variant LabelVariant, rx [][]float64, ry []string) (Result, error) {
	start := time.Now()

	enc := features.NewLabelEncoder()
	codes, err := enc.FitTransform(ry)
	if err != nil {
		return Result{}, err
	}

	folds, err := evaluation.StratifiedKFold{Folds: e.Folds, Seed: e.Seed}.Split(codes)
	if err != nil {
		return Result{}, err
	}

	scores, err := evaluation.CrossValScore(e.NewClassifier, rx, codes, folds)
	if err != nil {
		return Result{}, err
	}
	mean, std := evaluation.MeanStd(scores)

	predCodes, err := evaluation.CrossValPredict(e.NewClassifier, rx, codes, folds)
	if err != nil {
		return Result{}, err
	}
	predicted, err := enc.InverseTransform(predCodes)
	if err != nil {
		return Result{}, err
	}

	if e.Observer != nil {
		e.Observer.ObserveScore(strategyName, variant.Name, time.Since(start))
	}
	log.Info().
		Str("strategy", strategyName).
		Str("label", variant.Name).
		Float64("mean_accuracy", mean).
		Float64("std_accuracy", std).
		Dur("elapsed", time.Since(start)).
		Msgf("%s - %s - Forest Accuracy: %.2f%% (+/- %.2f%%)", strategyName, variant.Name, mean*100, std*100)

	if e.Sink != nil {
		title := fmt.Sprintf("%s - RandomForest - Label %s", strategyName, variant.Name)
		if err := e.Sink.ConfusionMatrix(ry, predicted, title); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Key:           Key{Strategy: strategyName, Label: variant.Name},
		MeanAccuracy:  mean,
		StdAccuracy:   std,
		FoldScores:    scores,
		ResampledRows: len(rx),
		Predicted:     predicted,
	}, nil
}

// tally counts label occurrences, largest class first.
func tally(y []string) ([]string, []int) {
	counts := make(map[string]int)
	for _, v := range y {
		counts[v]++
	}
	classes := make([]string, 0, len(counts))
	for v := range counts {
		classes = append(classes, v)
	}
	sort.Slice(classes, func(i, j int) bool {
		if counts[classes[i]] != counts[classes[j]] {
			return counts[classes[i]] > counts[classes[j]]
		}
		return classes[i] < classes[j]
	})
	out := make([]int, len(classes))
	for i, v := range classes {
		out[i] = counts[v]
	}
	return classes, out
}
