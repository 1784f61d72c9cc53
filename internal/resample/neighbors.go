package resample

import "sort"

// distanceFunc measures dissimilarity between two rows.
type distanceFunc func(a, b []float64) float64

func euclideanSq(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// kNearest returns the indices of the k points closest to query under dist,
// nearest first. exclude names an index to skip (the query itself when it is
// a member of points); pass -1 to consider every point.
func kNearest(points [][]float64, query []float64, k int, exclude int, dist distanceFunc) []int {
	type candidate struct {
		idx int
		d   float64
	}
	candidates := make([]candidate, 0, len(points))
	for i, p := range points {
		if i == exclude {
			continue
		}
		candidates = append(candidates, candidate{idx: i, d: dist(p, query)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].d != candidates[j].d {
			return candidates[i].d < candidates[j].d
		}
		return candidates[i].idx < candidates[j].idx
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].idx
	}
	return out
}

// neighborTable precomputes the k nearest within-group neighbours for every
// point of the group.
func neighborTable(points [][]float64, k int, dist distanceFunc) [][]int {
	table := make([][]int, len(points))
	for i, p := range points {
		table[i] = kNearest(points, p, k, i, dist)
	}
	return table
}
