package resample

import "math/rand"

// linearSVM is a minimal hinge-loss binary classifier trained by stochastic
// subgradient descent. It exists only to locate the margin-violating samples
// SVMSMOTE uses as synthesis seeds.
type linearSVM struct {
	weights []float64
	bias    float64
	lambda  float64
	epochs  int
}

func newLinearSVM(dims int) *linearSVM {
	return &linearSVM{
		weights: make([]float64, dims),
		lambda:  0.01,
		epochs:  20,
	}
}

// fit trains on x with labels in {-1, +1}.
func (s *linearSVM) fit(x [][]float64, y []float64, rng *rand.Rand) {
	n := len(x)
	t := 1
	for epoch := 0; epoch < s.epochs; epoch++ {
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			eta := 1 / (s.lambda * float64(t))
			t++
			margin := y[j] * s.decision(x[j])
			for d := range s.weights {
				s.weights[d] *= 1 - eta*s.lambda
			}
			if margin < 1 {
				for d := range s.weights {
					s.weights[d] += eta * y[j] * x[j][d]
				}
				s.bias += eta * y[j]
			}
		}
	}
}

func (s *linearSVM) decision(row []float64) float64 {
	var sum float64
	for d, w := range s.weights {
		sum += w * row[d]
	}
	return sum + s.bias
}

// supportVectors returns the indices of samples on or inside the margin.
func (s *linearSVM) supportVectors(x [][]float64, y []float64) []int {
	out := make([]int, 0)
	for i, row := range x {
		if y[i]*s.decision(row) < 1 {
			out = append(out, i)
		}
	}
	return out
}
