package evaluation

import (
	"fmt"
	"testing"

	"imbalance-bench/internal/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nearestCentroid is a deterministic stand-in classifier: it predicts the
// class whose training-set mean is closest to the query row.
type nearestCentroid struct {
	centroids map[int][]float64
}

func (c *nearestCentroid) Fit(x [][]float64, y []int) error {
	sums := make(map[int][]float64)
	counts := make(map[int]int)
	for i, row := range x {
		if sums[y[i]] == nil {
			sums[y[i]] = make([]float64, len(row))
		}
		for d, v := range row {
			sums[y[i]][d] += v
		}
		counts[y[i]]++
	}
	c.centroids = make(map[int][]float64, len(sums))
	for class, sum := range sums {
		for d := range sum {
			sum[d] /= float64(counts[class])
		}
		c.centroids[class] = sum
	}
	return nil
}

func (c *nearestCentroid) Predict(x [][]float64) ([]int, error) {
	if c.centroids == nil {
		return nil, fmt.Errorf("not fitted")
	}
	out := make([]int, len(x))
	for i, row := range x {
		best, bestD := 0, -1.0
		for class, centroid := range c.centroids {
			var d float64
			for j := range row {
				diff := row[j] - centroid[j]
				d += diff * diff
			}
			if bestD < 0 || d < bestD {
				best, bestD = class, d
			}
		}
		out[i] = best
	}
	return out, nil
}

func centroidFactory() classifier.Classifier { return &nearestCentroid{} }

// separableDataset builds two clusters any sane classifier separates.
func separableDataset(n int) ([][]float64, []int) {
	x := make([][]float64, 0, 2*n)
	y := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		x = append(x, []float64{float64(i%7) * 0.1, 0})
		y = append(y, 0)
		x = append(x, []float64{10 + float64(i%7)*0.1, 10})
		y = append(y, 1)
	}
	return x, y
}

func TestStratifiedKFold_PartitionsAllRows(t *testing.T) {
	y := make([]int, 104)
	for i := range y {
		y[i] = i % 2
	}
	folds, err := StratifiedKFold{Folds: 4, Seed: 20}.Split(y)
	require.NoError(t, err)
	require.Len(t, folds, 4)

	seen := make(map[int]bool)
	for _, fold := range folds {
		for _, i := range fold {
			assert.False(t, seen[i], "index %d appears in two folds", i)
			seen[i] = true
		}
	}
	assert.Len(t, seen, 104)
}

func TestStratifiedKFold_InvalidFolds(t *testing.T) {
	y := make([]int, 10)
	_, err := StratifiedKFold{Folds: 1, Seed: 20}.Split(y)
	assert.Error(t, err)
	_, err = StratifiedKFold{Folds: 11, Seed: 20}.Split(y)
	assert.Error(t, err)
}

func TestStratifiedKFold_PreservesProportions(t *testing.T) {
	y := make([]int, 0, 130)
	for i := 0; i < 100; i++ {
		y = append(y, 0)
	}
	for i := 0; i < 30; i++ {
		y = append(y, 1)
	}

	folds, err := StratifiedKFold{Folds: 10, Seed: 20}.Split(y)
	require.NoError(t, err)
	require.Len(t, folds, 10)

	for i, fold := range folds {
		minority := 0
		for _, row := range fold {
			if y[row] == 1 {
				minority++
			}
		}
		assert.Equalf(t, 3, minority, "fold %d should hold 3 minority rows", i)
	}
}

func TestStratifiedKFold_TooFewSamples(t *testing.T) {
	y := []int{0, 0, 0, 0, 0, 1, 1}
	_, err := StratifiedKFold{Folds: 5, Seed: 20}.Split(y)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestStratifiedKFold_Deterministic(t *testing.T) {
	y := make([]int, 60)
	for i := range y {
		y[i] = i % 3
	}
	a, err := StratifiedKFold{Folds: 5, Seed: 20}.Split(y)
	require.NoError(t, err)
	b, err := StratifiedKFold{Folds: 5, Seed: 20}.Split(y)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCrossValScore_SeparableData(t *testing.T) {
	x, y := separableDataset(50)
	folds, err := StratifiedKFold{Folds: 10, Seed: 20}.Split(y)
	require.NoError(t, err)

	scores, err := CrossValScore(centroidFactory, x, y, folds)
	require.NoError(t, err)
	require.Len(t, scores, 10)

	mean, std := MeanStd(scores)
	assert.Equal(t, 1.0, mean, "separable data should score perfectly")
	assert.Equal(t, 0.0, std)
}

func TestCrossValScore_BoundsHold(t *testing.T) {
	x, y := separableDataset(30)
	folds, err := StratifiedKFold{Folds: 5, Seed: 20}.Split(y)
	require.NoError(t, err)

	scores, err := CrossValScore(centroidFactory, x, y, folds)
	require.NoError(t, err)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
	mean, std := MeanStd(scores)
	assert.GreaterOrEqual(t, mean, 0.0)
	assert.LessOrEqual(t, mean, 1.0)
	assert.GreaterOrEqual(t, std, 0.0)
}

func TestCrossValScore_Idempotent(t *testing.T) {
	x, y := separableDataset(40)
	folds, err := StratifiedKFold{Folds: 10, Seed: 20}.Split(y)
	require.NoError(t, err)

	a, err := CrossValScore(centroidFactory, x, y, folds)
	require.NoError(t, err)
	b, err := CrossValScore(centroidFactory, x, y, folds)
	require.NoError(t, err)
	assert.Equal(t, a, b, "fixed-seed scoring must be bit-identical across runs")
}

func TestCrossValPredict_CoversEveryRow(t *testing.T) {
	x, y := separableDataset(25)
	folds, err := StratifiedKFold{Folds: 5, Seed: 20}.Split(y)
	require.NoError(t, err)

	predicted, err := CrossValPredict(centroidFactory, x, y, folds)
	require.NoError(t, err)
	require.Len(t, predicted, len(x))
	assert.Equal(t, y, predicted, "separable data should predict perfectly")
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 1.0, Accuracy([]int{1, 2, 3}, []int{1, 2, 3}))
	assert.Equal(t, 0.0, Accuracy([]int{1, 1}, []int{2, 2}))
	assert.InDelta(t, 0.5, Accuracy([]int{1, 2}, []int{1, 3}), 1e-12)
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func TestConfusionMatrix(t *testing.T) {
	actual := []string{"dos", "normal", "dos", "probe"}
	predicted := []string{"dos", "dos", "normal", "probe"}

	classes, counts := ConfusionMatrix(actual, predicted)
	require.Equal(t, []string{"dos", "normal", "probe"}, classes)

	assert.Equal(t, 1, counts[0][0]) // dos -> dos
	assert.Equal(t, 1, counts[0][1]) // dos -> normal
	assert.Equal(t, 1, counts[1][0]) // normal -> dos
	assert.Equal(t, 1, counts[2][2]) // probe -> probe
	assert.Equal(t, 0, counts[1][1])
}

func TestForestFactory(t *testing.T) {
	f := classifier.NewForestFactory(3)
	model := f()
	require.NotNil(t, model)

	// predicting before training is an error
	_, err := model.Predict([][]float64{{1, 2}})
	assert.Error(t, err)
}
