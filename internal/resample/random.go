package resample

// RandomOverSampler rebalances by duplicating randomly drawn minority rows
// until every class matches the majority count.
type RandomOverSampler struct {
	seed int64
}

// NewRandomOverSampler creates a seeded random oversampler.
func NewRandomOverSampler(seed int64) *RandomOverSampler {
	return &RandomOverSampler{seed: seed}
}

func (*RandomOverSampler) Name() string { return "RandomOverSampler" }

func (r *RandomOverSampler) Resample(x [][]float64, y []string) ([][]float64, []string, error) {
	if err := checkAligned(x, y); err != nil {
		return nil, nil, err
	}

	order, groups := classGroups(y)
	target := majorityCount(groups)
	extra := 0
	for _, class := range order {
		extra += target - len(groups[class])
	}

	rng := newRNG(r.seed)
	outX, outY := appendResampled(x, y, extra)
	for _, class := range order {
		idx := groups[class]
		for n := len(idx); n < target; n++ {
			src := idx[rng.Intn(len(idx))]
			outX = append(outX, x[src])
			outY = append(outY, class)
		}
	}
	return outX, outY, nil
}
