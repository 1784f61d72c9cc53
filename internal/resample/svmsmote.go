package resample

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
)

// SVMSMOTE seeds synthesis from the support vectors of a per-class linear
// SVM: new rows are interpolated inward where the boundary is crowded by
// other classes and extrapolated outward where it is not.
type SVMSMOTE struct {
	neighbors int
	danger    int
	seed      int64
}

// NewSVMSMOTE creates an SVM-guided SMOTE strategy.
func NewSVMSMOTE(neighbors, danger int, seed int64) *SVMSMOTE {
	return &SVMSMOTE{neighbors: neighbors, danger: danger, seed: seed}
}

func (*SVMSMOTE) Name() string { return "SVMSMOTE" }

func (s *SVMSMOTE) Resample(x [][]float64, y []string) ([][]float64, []string, error) {
	if err := checkAligned(x, y); err != nil {
		return nil, nil, err
	}

	order, groups := classGroups(y)
	target := majorityCount(groups)

	rng := newRNG(s.seed)
	outX, outY := appendResampled(x, y, 0)
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

		seeds := s.classSupportVectors(x, y, class, idx, rng)
		if len(seeds) == 0 {
			log.Warn().Str("class", class).Msg("no support vectors, skipping class")
			continue
		}

		points := gather(x, idx)
		table := neighborTable(points, s.neighbors, euclideanSq)
		position := make(map[int]int, len(idx))
		for pos, abs := range idx {
			position[abs] = pos
		}

		for i := 0; i < need; i++ {
			abs := seeds[rng.Intn(len(seeds))]
			pos := position[abs]
			nb := table[pos][rng.Intn(len(table[pos]))]
			if s.crowded(x, y, class, abs) {
				outX = append(outX, interpolate(points[pos], points[nb], rng.Float64()))
			} else {
				outX = append(outX, extrapolate(points[pos], points[nb], rng.Float64()))
			}
			outY = append(outY, class)
		}
	}
	return outX, outY, nil
}

// classSupportVectors fits a one-vs-rest linear SVM for the class and maps
// its minority support vectors back to absolute row indices, dropping the
// ones whose neighbourhood is pure noise.
func (s *SVMSMOTE) classSupportVectors(x [][]float64, y []string, class string, idx []int, rng *rand.Rand) []int {
	labels := make([]float64, len(x))
	for i, l := range y {
		if l == class {
			labels[i] = 1
		} else {
			labels[i] = -1
		}
	}

	svm := newLinearSVM(len(x[0]))
	svm.fit(x, labels, rng)

	inClass := make(map[int]bool, len(idx))
	for _, abs := range idx {
		inClass[abs] = true
	}

	seeds := make([]int, 0)
	for _, abs := range svm.supportVectors(x, labels) {
		if !inClass[abs] {
			continue
		}
		nn := kNearest(x, x[abs], s.danger, abs, euclideanSq)
		others := 0
		for _, j := range nn {
			if y[j] != class {
				others++
			}
		}
		if others < len(nn) { // not pure noise
			seeds = append(seeds, abs)
		}
	}
	return seeds
}

// crowded reports whether more than half of the sample's neighbourhood
// belongs to other classes.
func (s *SVMSMOTE) crowded(x [][]float64, y []string, class string, abs int) bool {
	nn := kNearest(x, x[abs], s.danger, abs, euclideanSq)
	others := 0
	for _, j := range nn {
		if y[j] != class {
			others++
		}
	}
	return others*2 > len(nn)
}
