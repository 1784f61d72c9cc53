package resample

import (
	"fmt"
)

// SMOTE synthesizes minority samples by interpolating between a minority row
// and one of its k nearest within-class neighbours.
type SMOTE struct {
	neighbors int
	seed      int64
}

// NewSMOTE creates a SMOTE strategy with the given neighbour count and seed.
func NewSMOTE(neighbors int, seed int64) *SMOTE {
	return &SMOTE{neighbors: neighbors, seed: seed}
}

func (*SMOTE) Name() string { return "SMOTE" }

func (s *SMOTE) Resample(x [][]float64, y []string) ([][]float64, []string, error) {
	if err := checkAligned(x, y); err != nil {
		return nil, nil, err
	}

	order, groups := classGroups(y)
	target := majorityCount(groups)
	extra := 0
	for _, class := range order {
		extra += target - len(groups[class])
	}

	rng := newRNG(s.seed)
	outX, outY := appendResampled(x, y, extra)
	for _, class := range order {
		idx := groups[class]
		need := target - len(idx)
		if need == 0 {
			continue
		}
		if len(idx) <= s.neighbors {
			return nil, nil, fmt.Errorf("class %q has %d samples, need more than %d neighbors: %w",
				class, len(idx), s.neighbors, ErrInsufficientSamples)
		}

		points := gather(x, idx)
		table := neighborTable(points, s.neighbors, euclideanSq)
		for i := 0; i < need; i++ {
			seed := rng.Intn(len(points))
			nb := table[seed][rng.Intn(len(table[seed]))]
			outX = append(outX, interpolate(points[seed], points[nb], rng.Float64()))
			outY = append(outY, class)
		}
	}
	return outX, outY, nil
}
