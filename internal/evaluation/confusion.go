package evaluation

import "sort"

// ConfusionMatrix tallies predicted against actual labels. Classes are the
// sorted union of both vectors; Counts[i][j] is the number of rows with
// actual class i predicted as class j.
func ConfusionMatrix(actual, predicted []string) (classes []string, counts [][]int) {
	seen := make(map[string]int)
	for _, v := range actual {
		seen[v] = 0
	}
	for _, v := range predicted {
		seen[v] = 0
	}
	classes = make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)
	for i, v := range classes {
		seen[v] = i
	}

	counts = make([][]int, len(classes))
	for i := range counts {
		counts[i] = make([]int, len(classes))
	}
	for i := range actual {
		counts[seen[actual[i]]][seen[predicted[i]]]++
	}
	return classes, counts
}
