// Package belief implements updatable posteriors over a scalar reward,
// the building block bandits use to estimate the value of an arm.
package belief

import (
	"math"

	"golang.org/x/exp/rand"
)

// Reward is the scalar quantity beliefs are estimates of: a contribution
// to (or, after backpropagation, an estimate of) a program's log-weight.
type Reward = float64

// Belief is a posterior over the expected future reward of some choice.
// Implementations must support being sampled only once cnt > 0; the
// empty belief's Sample is a programmer error, never a runtime one.
type Belief interface {
	Update(r Reward) Belief
	Sample(rng *rand.Rand) Reward
	AsPrior() Belief
	Mode() Reward
	Count() int
}

// EmpiricalNormal is the belief family specified by default: a running
// sum and sum of squares, treated as a normal over the sample mean.
type EmpiricalNormal struct {
	sum  float64
	sum2 float64
	cnt  int
}

// NewEmpiricalNormal returns the zeroed, uninformative prior.
func NewEmpiricalNormal() EmpiricalNormal {
	return EmpiricalNormal{}
}

func (b EmpiricalNormal) Update(r Reward) Belief {
	return EmpiricalNormal{sum: b.sum + r, sum2: b.sum2 + r*r, cnt: b.cnt + 1}
}

// Sample draws from Normal(mean, sqrt(variance-of-the-mean)). Panics if
// cnt == 0; callers must never sample an empty belief directly (only a
// bandit's new-arm sentinel may be empty, and the bandit never samples it).
func (b EmpiricalNormal) Sample(rng *rand.Rand) Reward {
	if b.cnt == 0 {
		panic("belief: Sample called on an empty EmpiricalNormal")
	}
	n := float64(b.cnt)
	mean := b.sum / n
	variance := b.sum2/n - mean*mean
	variance /= n
	if variance < 0 {
		variance = 0
	}
	return mean + rng.NormFloat64()*math.Sqrt(variance)
}

// AsPrior compresses an informed belief down to a weak prior carrying
// only the mean and mean-of-squares, with cnt reset to 1. Beliefs with
// cnt <= 1 are returned unchanged.
func (b EmpiricalNormal) AsPrior() Belief {
	if b.cnt <= 1 {
		return b
	}
	n := float64(b.cnt)
	return EmpiricalNormal{sum: b.sum / n, sum2: b.sum2 / n, cnt: 1}
}

func (b EmpiricalNormal) Mode() Reward {
	if b.cnt == 0 {
		return 0
	}
	return b.sum / float64(b.cnt)
}

func (b EmpiricalNormal) Count() int {
	return b.cnt
}
