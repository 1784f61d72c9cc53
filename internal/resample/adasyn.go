package resample

import (
	"fmt"
)

// ADASYN distributes synthesis adaptively: minority samples with more
// out-of-class neighbours receive proportionally more synthetic offspring,
// shifting effort toward the harder parts of the decision boundary.
type ADASYN struct {
	neighbors int
	seed      int64
}

// NewADASYN creates an ADASYN strategy with the given density-neighbour
// count and seed.
func NewADASYN(neighbors int, seed int64) *ADASYN {
	return &ADASYN{neighbors: neighbors, seed: seed}
}

func (*ADASYN) Name() string { return "ADASYN" }

func (a *ADASYN) Resample(x [][]float64, y []string) ([][]float64, []string, error) {
	if err := checkAligned(x, y); err != nil {
		return nil, nil, err
	}

	order, groups := classGroups(y)
	target := majorityCount(groups)

	rng := newRNG(a.seed)
	outX, outY := appendResampled(x, y, 0)
	for _, class := range order {
		idx := groups[class]
		need := target - len(idx)
		if need == 0 {
			continue
		}
		if len(idx) <= a.neighbors {
			return nil, nil, fmt.Errorf("class %q has %d samples, need more than %d neighbors: %w",
				class, len(idx), a.neighbors, ErrInsufficientSamples)
		}

		// density ratio per sample: share of out-of-class points among the
		// k nearest neighbours over the whole dataset
		ratios := make([]float64, len(idx))
		var total float64
		for i, abs := range idx {
			nn := kNearest(x, x[abs], a.neighbors, abs, euclideanSq)
			others := 0
			for _, j := range nn {
				if y[j] != class {
					others++
				}
			}
			ratios[i] = float64(others) / float64(len(nn))
			total += ratios[i]
		}
		if total == 0 {
			// class is perfectly separated, fall back to uniform weights
			for i := range ratios {
				ratios[i] = 1
			}
			total = float64(len(ratios))
		}

		counts := apportion(ratios, total, need)

		points := gather(x, idx)
		table := neighborTable(points, a.neighbors, euclideanSq)
		for pos, n := range counts {
			for i := 0; i < n; i++ {
				nb := table[pos][rng.Intn(len(table[pos]))]
				outX = append(outX, interpolate(points[pos], points[nb], rng.Float64()))
				outY = append(outY, class)
			}
		}
	}
	return outX, outY, nil
}

// apportion splits need proportionally to the weights, distributing rounding
// leftovers to the heaviest weights so the counts sum exactly to need.
func apportion(weights []float64, total float64, need int) []int {
	counts := make([]int, len(weights))
	assigned := 0
	for i, w := range weights {
		counts[i] = int(w / total * float64(need))
		assigned += counts[i]
	}
	for assigned < need {
		best, bestW := 0, -1.0
		for i, w := range weights {
			remainder := w/total*float64(need) - float64(counts[i])
			if remainder > bestW {
				best, bestW = i, remainder
			}
		}
		counts[best]++
		assigned++
	}
	return counts
}
