package resample

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticDataset builds a fixed-seed dataset with the given per-class
// counts and feature dimensionality. Each class occupies its own region so
// neighbourhood-based strategies have structure to work with.
func syntheticDataset(counts map[string]int, dims int, seed int64) ([][]float64, []string) {
	rng := rand.New(rand.NewSource(seed))
	classes := make([]string, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	// deterministic class order
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			if classes[j] < classes[i] {
				classes[i], classes[j] = classes[j], classes[i]
			}
		}
	}

	var x [][]float64
	var y []string
	for ci, class := range classes {
		center := float64(ci * 10)
		for i := 0; i < counts[class]; i++ {
			row := make([]float64, dims)
			for d := range row {
				row[d] = center + rng.NormFloat64()
			}
			x = append(x, row)
			y = append(y, class)
		}
	}
	return x, y
}

// overlappingDataset is like syntheticDataset but with class regions close
// enough to overlap, so boundary-driven strategies find danger samples and
// support vectors to work with.
func overlappingDataset(counts map[string]int, dims int, seed int64) ([][]float64, []string) {
	x, y := syntheticDataset(counts, dims, seed)
	// class centres sit 10 apart with unit noise; widen the noise so the
	// regions overlap
	rng := rand.New(rand.NewSource(seed + 1))
	for i := range x {
		for d := range x[i] {
			x[i][d] = x[i][d]/10 + rng.NormFloat64()
		}
	}
	return x, y
}

func classCounts(y []string) map[string]int {
	counts := make(map[string]int)
	for _, c := range y {
		counts[c]++
	}
	return counts
}

func imbalanceRatio(y []string) float64 {
	counts := classCounts(y)
	min, max := -1, 0
	for _, n := range counts {
		if n > max {
			max = n
		}
		if min == -1 || n < min {
			min = n
		}
	}
	return float64(max) / float64(min)
}

func allStrategies() []Resampler {
	return []Resampler{
		Original{},
		NewRandomOverSampler(20),
		NewSMOTE(5, 0),
		NewADASYN(5, 20),
		NewBorderlineSMOTE(5, 10, Borderline1, 20),
		NewBorderlineSMOTE(5, 10, Borderline2, 20),
		NewSVMSMOTE(5, 10, 20),
		NewSMOTENC([]int{1, 2, 3}, 5, 20),
	}
}

func TestResample_AlignmentPreserved(t *testing.T) {
	x, y := syntheticDataset(map[string]int{"dos": 200, "probe": 40, "normal": 180}, 6, 20)

	for _, s := range allStrategies() {
		t.Run(s.Name(), func(t *testing.T) {
			rx, ry, err := s.Resample(x, y)
			require.NoError(t, err)
			assert.Equal(t, len(rx), len(ry), "rows and labels must stay aligned")
			assert.GreaterOrEqual(t, len(rx), len(x))
		})
	}
}

func TestOriginal_IsIdentity(t *testing.T) {
	x, y := syntheticDataset(map[string]int{"a": 30, "b": 10}, 4, 20)

	rx, ry, err := Original{}.Resample(x, y)
	require.NoError(t, err)
	require.Len(t, rx, len(x))
	for i := range x {
		assert.Equal(t, x[i], rx[i])
		assert.Equal(t, y[i], ry[i])
	}
}

func TestOriginal_Misaligned(t *testing.T) {
	_, _, err := Original{}.Resample([][]float64{{1}}, []string{"a", "b"})
	assert.Error(t, err)
}

func TestResample_ImprovesBalance(t *testing.T) {
	x, y := overlappingDataset(map[string]int{"dos": 200, "probe": 40, "normal": 180}, 6, 20)
	before := imbalanceRatio(y)

	for _, s := range allStrategies() {
		if s.Name() == "Original" {
			continue
		}
		t.Run(s.Name(), func(t *testing.T) {
			_, ry, err := s.Resample(x, y)
			require.NoError(t, err)
			assert.Less(t, imbalanceRatio(ry), before, "resampled distribution must be more balanced")
		})
	}
}

func TestResample_ExactBalance(t *testing.T) {
	// strategies that synthesize a fixed deficit per class reach the
	// majority count exactly
	x, y := syntheticDataset(map[string]int{"dos": 150, "probe": 30}, 4, 20)

	for _, s := range []Resampler{
		NewRandomOverSampler(20),
		NewSMOTE(5, 0),
		NewSMOTENC([]int{0}, 5, 20),
	} {
		t.Run(s.Name(), func(t *testing.T) {
			_, ry, err := s.Resample(x, y)
			require.NoError(t, err)
			counts := classCounts(ry)
			assert.Equal(t, 150, counts["dos"])
			assert.Equal(t, 150, counts["probe"])
		})
	}
}

func TestResample_Deterministic(t *testing.T) {
	x, y := syntheticDataset(map[string]int{"dos": 120, "probe": 25}, 5, 20)

	for _, name := range []string{"SMOTE", "ADASYN", "RandomOverSampler"} {
		build := func() Resampler {
			switch name {
			case "SMOTE":
				return NewSMOTE(5, 0)
			case "ADASYN":
				return NewADASYN(5, 20)
			default:
				return NewRandomOverSampler(20)
			}
		}
		t.Run(name, func(t *testing.T) {
			x1, y1, err := build().Resample(x, y)
			require.NoError(t, err)
			x2, y2, err := build().Resample(x, y)
			require.NoError(t, err)
			assert.Equal(t, x1, x2)
			assert.Equal(t, y1, y2)
		})
	}
}

func TestResample_InsufficientSamples(t *testing.T) {
	// minority class smaller than the neighbour parameter
	x, y := syntheticDataset(map[string]int{"dos": 50, "u2r": 3}, 4, 20)

	for _, s := range []Resampler{
		NewSMOTE(5, 0),
		NewADASYN(5, 20),
		NewBorderlineSMOTE(5, 10, Borderline1, 20),
		NewSVMSMOTE(5, 10, 20),
		NewSMOTENC([]int{0}, 5, 20),
	} {
		t.Run(s.Name(), func(t *testing.T) {
			_, _, err := s.Resample(x, y)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInsufficientSamples)
		})
	}
}

func TestSMOTE_SyntheticRowsStayInClassRegion(t *testing.T) {
	// two well-separated clusters: interpolation must not leave the
	// minority cluster's region
	x, y := syntheticDataset(map[string]int{"a": 100, "b": 20}, 3, 20)

	rx, ry, err := NewSMOTE(5, 0).Resample(x, y)
	require.NoError(t, err)

	for i := len(x); i < len(rx); i++ {
		require.Equal(t, "b", ry[i], "only the minority class gets synthetic rows")
		for _, v := range rx[i] {
			// class "b" cluster is centred at 10 with unit noise
			assert.InDelta(t, 10, v, 6)
		}
	}
}

func TestSMOTENC_InvalidPositions(t *testing.T) {
	x, y := syntheticDataset(map[string]int{"a": 40, "b": 10}, 4, 20)

	tests := []struct {
		name      string
		positions []int
	}{
		{"out of range", []int{10}},
		{"negative", []int{-1}},
		{"duplicate", []int{1, 1}},
		{"empty", nil},
		{"all categorical", []int{0, 1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := NewSMOTENC(tc.positions, 3, 20).Resample(x, y)
			assert.Error(t, err)
		})
	}
}

func TestSMOTENC_CategoricalValuesComeFromNeighbors(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	var x [][]float64
	var y []string
	for i := 0; i < 60; i++ {
		x = append(x, []float64{rng.NormFloat64(), 1})
		y = append(y, "a")
	}
	for i := 0; i < 15; i++ {
		x = append(x, []float64{10 + rng.NormFloat64(), 3})
		y = append(y, "b")
	}

	rx, ry, err := NewSMOTENC([]int{1}, 5, 20).Resample(x, y)
	require.NoError(t, err)

	for i := len(x); i < len(rx); i++ {
		require.Equal(t, "b", ry[i])
		assert.Equal(t, 3.0, rx[i][1], "categorical dimension must hold an observed category")
	}
}

func TestBorderlineSMOTE_UnknownKind(t *testing.T) {
	x, y := syntheticDataset(map[string]int{"a": 40, "b": 20}, 3, 20)
	_, _, err := NewBorderlineSMOTE(5, 10, "borderline-3", 20).Resample(x, y)
	assert.Error(t, err)
}

func TestEndToEnd_SkewedFourClassDataset(t *testing.T) {
	counts := map[string]int{"A": 1000, "B": 50, "C": 30, "D": 900}
	x, y := syntheticDataset(counts, 10, 20)
	require.Len(t, x, 1980)

	rx, ry, err := Original{}.Resample(x, y)
	require.NoError(t, err)
	assert.Len(t, rx, 1980)
	assert.Len(t, ry, 1980)

	_, ry, err = NewSMOTE(5, 0).Resample(x, y)
	require.NoError(t, err)
	for class, n := range classCounts(ry) {
		assert.InDeltaf(t, 1000, n, 50, "class %s should be near the majority count", class)
	}
}
