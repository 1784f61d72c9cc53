package resample

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SMOTENC handles mixed continuous/categorical feature spaces. Declared
// categorical column positions are static configuration, validated against
// the matrix width at resample time. Continuous dimensions interpolate as in
// SMOTE; categorical dimensions take the most frequent value among the
// seed's neighbours.
type SMOTENC struct {
	categorical []int
	neighbors   int
	seed        int64
}

// NewSMOTENC creates a mixed-type SMOTE strategy for the given categorical
// column positions.
func NewSMOTENC(categorical []int, neighbors int, seed int64) *SMOTENC {
	return &SMOTENC{categorical: categorical, neighbors: neighbors, seed: seed}
}

func (*SMOTENC) Name() string { return "SMOTENC" }

func (s *SMOTENC) Resample(x [][]float64, y []string) ([][]float64, []string, error) {
	if err := checkAligned(x, y); err != nil {
		return nil, nil, err
	}
	dims := len(x[0])
	if err := s.validatePositions(dims); err != nil {
		return nil, nil, err
	}

	isCat := make([]bool, dims)
	for _, p := range s.categorical {
		isCat[p] = true
	}
	continuous := make([]int, 0, dims-len(s.categorical))
	for d := 0; d < dims; d++ {
		if !isCat[d] {
			continuous = append(continuous, d)
		}
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
		dist := s.mixedDistance(points, continuous, isCat)
		table := neighborTable(points, s.neighbors, dist)
		for i := 0; i < need; i++ {
			seed := rng.Intn(len(points))
			nb := table[seed][rng.Intn(len(table[seed]))]
			row := interpolate(points[seed], points[nb], rng.Float64())
			for _, p := range s.categorical {
				row[p] = modeAt(points, table[seed], p)
			}
			outX = append(outX, row)
			outY = append(outY, class)
		}
	}
	return outX, outY, nil
}

func (s *SMOTENC) validatePositions(dims int) error {
	if len(s.categorical) == 0 {
		return fmt.Errorf("SMOTENC requires at least one categorical column position")
	}
	if len(s.categorical) == dims {
		return fmt.Errorf("SMOTENC requires at least one continuous column")
	}
	seen := make(map[int]bool, len(s.categorical))
	for _, p := range s.categorical {
		if p < 0 || p >= dims {
			return fmt.Errorf("categorical position %d outside feature matrix with %d columns", p, dims)
		}
		if seen[p] {
			return fmt.Errorf("duplicate categorical position %d", p)
		}
		seen[p] = true
	}
	return nil
}

// mixedDistance builds the SMOTE-NC metric: squared Euclidean over the
// continuous dimensions plus a fixed penalty per differing categorical
// value, scaled by the median continuous standard deviation of the class.
func (s *SMOTENC) mixedDistance(points [][]float64, continuous []int, isCat []bool) distanceFunc {
	stds := make([]float64, 0, len(continuous))
	col := make([]float64, len(points))
	for _, d := range continuous {
		for i, p := range points {
			col[i] = p[d]
		}
		stds = append(stds, stat.StdDev(col, nil))
	}
	sort.Float64s(stds)
	med := 0.0
	if len(stds) > 0 {
		med = stds[len(stds)/2]
	}
	penalty := (med / 2) * (med / 2)

	return func(a, b []float64) float64 {
		var sum float64
		for d := range a {
			if isCat[d] {
				if a[d] != b[d] {
					sum += penalty
				}
				continue
			}
			diff := a[d] - b[d]
			sum += diff * diff
		}
		return sum
	}
}

// modeAt returns the most frequent value of column p among the given rows,
// lowest value winning ties.
func modeAt(points [][]float64, rows []int, p int) float64 {
	counts := make(map[float64]int)
	for _, r := range rows {
		counts[points[r][p]]++
	}
	var best float64
	bestN := -1
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best
}
