package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// PowerTransformer applies a Yeo-Johnson power transform followed by
// standardization to a single continuous column. The transform parameter
// lambda is chosen per column by maximum likelihood.
type PowerTransformer struct {
	lambda float64
	mean   float64
	std    float64
	fitted bool
}

// NewPowerTransformer creates an unfitted transformer.
func NewPowerTransformer() *PowerTransformer {
	return &PowerTransformer{}
}

// Fit estimates lambda by log-likelihood maximization over [-2, 2] and the
// post-transform standardization moments.
func (p *PowerTransformer) Fit(values []float64) error {
	if len(values) < 2 {
		return fmt.Errorf("need at least 2 values to fit, have %d", len(values))
	}

	p.lambda = searchLambda(values)

	transformed := make([]float64, len(values))
	for i, v := range values {
		transformed[i] = yeoJohnson(v, p.lambda)
	}
	p.mean = stat.Mean(transformed, nil)
	p.std = stat.StdDev(transformed, nil)
	if p.std == 0 || math.IsNaN(p.std) {
		p.std = 1
	}
	p.fitted = true
	return nil
}

// Transform applies the fitted transform, returning a new slice.
func (p *PowerTransformer) Transform(values []float64) ([]float64, error) {
	if !p.fitted {
		return nil, fmt.Errorf("power transformer is not fitted")
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (yeoJohnson(v, p.lambda) - p.mean) / p.std
	}
	return out, nil
}

// FitTransform fits the transformer and transforms the same values.
func (p *PowerTransformer) FitTransform(values []float64) ([]float64, error) {
	if err := p.Fit(values); err != nil {
		return nil, err
	}
	return p.Transform(values)
}

// Lambda returns the fitted transform parameter.
func (p *PowerTransformer) Lambda() float64 { return p.lambda }

// yeoJohnson maps a value through the Yeo-Johnson transform for the given
// lambda. Unlike Box-Cox it is defined for zero and negative inputs.
func yeoJohnson(x, lambda float64) float64 {
	switch {
	case x >= 0 && lambda != 0:
		return (math.Pow(x+1, lambda) - 1) / lambda
	case x >= 0:
		return math.Log1p(x)
	case lambda != 2:
		return -(math.Pow(-x+1, 2-lambda) - 1) / (2 - lambda)
	default:
		return -math.Log1p(-x)
	}
}

// logLikelihood is the profile log-likelihood of lambda for the Yeo-Johnson
// transform under a normality assumption.
func logLikelihood(values []float64, lambda float64) float64 {
	n := float64(len(values))
	transformed := make([]float64, len(values))
	sumLog := 0.0
	for i, v := range values {
		transformed[i] = yeoJohnson(v, lambda)
		if v >= 0 {
			sumLog += math.Log1p(v)
		} else {
			sumLog -= math.Log1p(-v)
		}
	}
	variance := stat.Variance(transformed, nil) * (n - 1) / n
	if variance <= 0 {
		return math.Inf(-1)
	}
	return -n/2*math.Log(variance) + (lambda-1)*sumLog
}

// searchLambda scans a coarse grid over [-2, 2] and refines the best cell by
// golden-section search.
func searchLambda(values []float64) float64 {
	const (
		lo   = -2.0
		hi   = 2.0
		step = 0.25
	)

	best, bestLL := lo, math.Inf(-1)
	for l := lo; l <= hi+1e-9; l += step {
		if ll := logLikelihood(values, l); ll > bestLL {
			best, bestLL = l, ll
		}
	}

	a := math.Max(lo, best-step)
	b := math.Min(hi, best+step)
	return goldenSection(values, a, b)
}

func goldenSection(values []float64, a, b float64) float64 {
	const (
		phi = 0.6180339887498949
		tol = 1e-4
	)
	c := b - phi*(b-a)
	d := a + phi*(b-a)
	fc := logLikelihood(values, c)
	fd := logLikelihood(values, d)
	for b-a > tol {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - phi*(b-a)
			fc = logLikelihood(values, c)
		} else {
			a, c, fc = c, d, fd
			d = a + phi*(b-a)
			fd = logLikelihood(values, d)
		}
	}
	return (a + b) / 2
}
