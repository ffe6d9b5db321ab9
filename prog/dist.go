package prog

import (
	"math"

	"golang.org/x/exp/rand"
)

// DiscreteDist is a distribution over a finite set of comparable values,
// each with an associated log-probability.
type DiscreteDist struct {
	values   []any
	logProbs []float64
}

// NewDiscrete builds a DiscreteDist from parallel values/probabilities
// slices. Probabilities need not already sum to one; they are normalised.
func NewDiscrete(values []any, probs []float64) *DiscreteDist {
	total := 0.0
	for _, p := range probs {
		total += p
	}
	logProbs := make([]float64, len(probs))
	for i, p := range probs {
		logProbs[i] = math.Log(p / total)
	}
	return &DiscreteDist{values: values, logProbs: logProbs}
}

func (d *DiscreteDist) Sample(rng *rand.Rand) any {
	u := rng.Float64()
	cumulative := 0.0
	for i, lp := range d.logProbs {
		cumulative += math.Exp(lp)
		if u <= cumulative {
			return d.values[i]
		}
	}
	return d.values[len(d.values)-1]
}

func (d *DiscreteDist) LogDensity(value any) float64 {
	for i, v := range d.values {
		if v == value {
			return d.logProbs[i]
		}
	}
	return math.Inf(-1)
}

// NormalDist is a normal distribution over float64 values.
type NormalDist struct {
	Mu    float64
	Sigma float64
}

func (d NormalDist) Sample(rng *rand.Rand) any {
	return d.Mu + rng.NormFloat64()*d.Sigma
}

func (d NormalDist) LogDensity(value any) float64 {
	x, ok := value.(float64)
	if !ok {
		return math.NaN()
	}
	z := (x - d.Mu) / d.Sigma
	return -0.5*z*z - math.Log(d.Sigma) - 0.5*math.Log(2*math.Pi)
}
