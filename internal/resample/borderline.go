package resample

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// BorderlineKind selects which borderline variant to run.
type BorderlineKind string

const (
	// Borderline1 interpolates danger samples toward within-class neighbours.
	Borderline1 BorderlineKind = "borderline-1"
	// Borderline2 additionally interpolates toward out-of-class neighbours
	// with a halved step.
	Borderline2 BorderlineKind = "borderline-2"
)

// BorderlineSMOTE concentrates synthesis on minority samples near the class
// boundary: only samples whose neighbourhood is dominated, but not fully
// occupied, by other classes seed new rows.
type BorderlineSMOTE struct {
	neighbors int
	danger    int
	kind      BorderlineKind
	seed      int64
}

// NewBorderlineSMOTE creates a borderline strategy. neighbors is the k used
// for interpolation, danger the m used to classify boundary samples.
func NewBorderlineSMOTE(neighbors, danger int, kind BorderlineKind, seed int64) *BorderlineSMOTE {
	return &BorderlineSMOTE{neighbors: neighbors, danger: danger, kind: kind, seed: seed}
}

func (b *BorderlineSMOTE) Name() string {
	return fmt.Sprintf("BorderlineSMOTE-%s", b.kind)
}

func (b *BorderlineSMOTE) Resample(x [][]float64, y []string) ([][]float64, []string, error) {
	if err := checkAligned(x, y); err != nil {
		return nil, nil, err
	}
	if b.kind != Borderline1 && b.kind != Borderline2 {
		return nil, nil, fmt.Errorf("unknown borderline kind %q", b.kind)
	}

	order, groups := classGroups(y)
	target := majorityCount(groups)

	rng := newRNG(b.seed)
	outX, outY := appendResampled(x, y, 0)
	for _, class := range order {
		idx := groups[class]
		need := target - len(idx)
		if need == 0 {
			continue
		}
		if len(idx) <= b.neighbors {
			return nil, nil, fmt.Errorf("class %q has %d samples, need more than %d neighbors: %w",
				class, len(idx), b.neighbors, ErrInsufficientSamples)
		}

		danger := b.dangerSamples(x, y, class, idx)
		if len(danger) == 0 {
			log.Warn().Str("class", class).Msg("no danger samples, skipping class")
			continue
		}

		points := gather(x, idx)
		table := neighborTable(points, b.neighbors, euclideanSq)
		// map absolute row index back to its position within the class
		position := make(map[int]int, len(idx))
		for pos, abs := range idx {
			position[abs] = pos
		}

		for i := 0; i < need; i++ {
			abs := danger[rng.Intn(len(danger))]
			pos := position[abs]
			if b.kind == Borderline2 && rng.Float64() < 0.5 {
				// step halfway toward the nearest out-of-class neighbour
				other := b.nearestOther(x, y, class, abs)
				outX = append(outX, interpolate(x[abs], x[other], rng.Float64()*0.5))
			} else {
				nb := table[pos][rng.Intn(len(table[pos]))]
				outX = append(outX, interpolate(points[pos], points[nb], rng.Float64()))
			}
			outY = append(outY, class)
		}
	}
	return outX, outY, nil
}

// dangerSamples returns the absolute indices of class members whose m-NN
// neighbourhood holds at least m/2 but fewer than m out-of-class samples.
// Samples fully surrounded by other classes are treated as noise.
func (b *BorderlineSMOTE) dangerSamples(x [][]float64, y []string, class string, idx []int) []int {
	danger := make([]int, 0)
	for _, abs := range idx {
		nn := kNearest(x, x[abs], b.danger, abs, euclideanSq)
		others := 0
		for _, j := range nn {
			if y[j] != class {
				others++
			}
		}
		if others >= len(nn)/2 && others < len(nn) {
			danger = append(danger, abs)
		}
	}
	return danger
}

func (b *BorderlineSMOTE) nearestOther(x [][]float64, y []string, class string, abs int) int {
	best, bestDist := -1, 0.0
	for j := range x {
		if j == abs || y[j] == class {
			continue
		}
		d := euclideanSq(x[j], x[abs])
		if best == -1 || d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}
