package evaluation

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"imbalance-bench/internal/classifier"
)

// CrossValScore fits a fresh classifier per fold and returns the accuracy of
// each fold's held-out predictions.
func CrossValScore(factory classifier.Factory, x [][]float64, y []int, folds [][]int) ([]float64, error) {
	scores := make([]float64, len(folds))
	for i, test := range folds {
		predicted, actual, err := evaluateFold(factory, x, y, test)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", i, err)
		}
		scores[i] = Accuracy(actual, predicted)
	}
	return scores, nil
}

// CrossValPredict returns one prediction per row, each produced by the fold
// model that held that row out of training.
func CrossValPredict(factory classifier.Factory, x [][]float64, y []int, folds [][]int) ([]int, error) {
	out := make([]int, len(x))
	for i, test := range folds {
		predicted, _, err := evaluateFold(factory, x, y, test)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", i, err)
		}
		for j, row := range test {
			out[row] = predicted[j]
		}
	}
	return out, nil
}

func evaluateFold(factory classifier.Factory, x [][]float64, y []int, test []int) (predicted, actual []int, err error) {
	inTest := make(map[int]bool, len(test))
	for _, row := range test {
		inTest[row] = true
	}

	trainX := make([][]float64, 0, len(x)-len(test))
	trainY := make([]int, 0, len(x)-len(test))
	for i := range x {
		if !inTest[i] {
			trainX = append(trainX, x[i])
			trainY = append(trainY, y[i])
		}
	}

	testX := make([][]float64, len(test))
	actual = make([]int, len(test))
	for i, row := range test {
		testX[i] = x[row]
		actual[i] = y[row]
	}

	model := factory()
	if err := model.Fit(trainX, trainY); err != nil {
		return nil, nil, fmt.Errorf("fit: %w", err)
	}
	predicted, err = model.Predict(testX)
	if err != nil {
		return nil, nil, fmt.Errorf("predict: %w", err)
	}
	return predicted, actual, nil
}

// Accuracy is the share of positions where both label vectors agree.
func Accuracy(actual, predicted []int) float64 {
	if len(actual) == 0 {
		return 0
	}
	correct := 0
	for i := range actual {
		if actual[i] == predicted[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(actual))
}

// MeanStd summarizes fold scores as mean and population standard deviation.
func MeanStd(scores []float64) (mean, std float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	mean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		std = stat.PopStdDev(scores, nil)
	}
	return mean, std
}
