// Package bandit maintains, per choice site, a posterior belief over the
// reward of every value observed there so far, plus a prior for values
// not yet seen.
package bandit

import (
	"golang.org/x/exp/rand"

	"mapsearch/belief"
)

// Arm is one observed value at a bandit and the belief over its reward.
type Arm struct {
	Value  any
	Belief belief.Belief
}

// Bandit is the ensemble of arms at one choice site plus the belief used
// both as the prior for never-seen values and as the exploration
// incumbent in SelectArm.
type Bandit struct {
	arms   map[any]belief.Belief
	order  []any
	newArm belief.Belief
}

// New returns an empty bandit: no arms, an uninformative new-arm prior.
func New() *Bandit {
	return &Bandit{
		arms:   make(map[any]belief.Belief),
		newArm: belief.NewEmpiricalNormal(),
	}
}

// SelectArm samples a score from every existing arm and from the new-arm
// belief, returning the winning arm's value, or ok == false if the
// new-arm belief wins (the caller should then draw from the prior
// distribution itself). A bandit with no arms always returns ok == false,
// since its new-arm belief is necessarily empty and must not be sampled.
//
// Ties are broken in favour of the earlier-inserted candidate: the
// new-arm belief is the initial incumbent, and a real arm only displaces
// a previous real arm on a score that is strictly greater, except that
// while the new-arm belief is still the incumbent, a real arm displaces
// it on a tie — favouring exploitation of a known arm over trying
// something new.
func (b *Bandit) SelectArm(rng *rand.Rand) (value any, ok bool) {
	if len(b.order) == 0 {
		return nil, false
	}

	best := b.newArm.Sample(rng)
	for _, v := range b.order {
		score := b.arms[v].Sample(rng)
		if !ok {
			if score >= best {
				best, value, ok = score, v, true
			}
			continue
		}
		if score > best {
			best, value, ok = score, v, true
		}
	}
	return value, ok
}

// Update records a reward observed for value, creating the arm (seeded
// from the new-arm belief's current prior, before that belief itself
// absorbs the reward) if this is the first time value has been seen.
func (b *Bandit) Update(value any, reward belief.Reward) {
	if _, exists := b.arms[value]; !exists {
		b.arms[value] = b.newArm.AsPrior()
		b.newArm = b.newArm.Update(reward)
		b.order = append(b.order, value)
	}
	b.arms[value] = b.arms[value].Update(reward)
}

// Arms returns the bandit's arms in insertion order.
func (b *Bandit) Arms() []Arm {
	arms := make([]Arm, len(b.order))
	for i, v := range b.order {
		arms[i] = Arm{Value: v, Belief: b.arms[v]}
	}
	return arms
}

// NewArmCount returns how many distinct arms this bandit has ever
// created, which by construction equals its new-arm belief's count.
func (b *Bandit) NewArmCount() int {
	return b.newArm.Count()
}
