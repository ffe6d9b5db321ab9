package searcher

import (
	"iter"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mapsearch/prog"
)

// Search runs program in best-first mode from beginState: at every
// sample checkpoint it expands every currently-known arm as a child
// (rather than choosing one value), ordering children in the open list
// by accumulated cost plus a heuristic estimate of remaining cost. It
// returns a lazy sequence of terminal states, ordered by discovery, not by
// log-weight. The accumulated cost is the negated log-weight from before a
// node's own choice, so even with k == 0 (cost = that past reward alone)
// the children of one checkpoint tie and leave in arm insertion order.
//
// Consuming fewer elements than the sequence could produce (breaking out
// of a range loop early) simply stops the search; no cleanup is owed.
//
// onExpand, if non-nil, is invoked once per node enqueued into the open
// list — a hook for callers that want to count search nodes expanded
// without the searcher package depending on any particular metrics type.
func Search(program prog.Program, beginState *prog.State, k int, rng *rand.Rand, onExpand func()) iter.Seq[*prog.State] {
	return func(yield func(*prog.State) bool) {
		ol := NewOpenList()
		cp := program(beginState)

		for {
			switch c := cp.(type) {
			case prog.Result:
				if !yield(c.State) {
					return
				}
			case prog.Sample:
				expand(c, ol, k, rng, onExpand)
			default:
				panic("searcher: program yielded an unknown checkpoint type")
			}

			resume, ok := ol.Pop()
			if !ok {
				return
			}
			cp = resume().(prog.Checkpoint)
		}
	}
}

// expand enqueues one child per arm currently known at c's site. A child
// with a NaN cost is dropped rather than enqueued.
func expand(c prog.Sample, ol *OpenList, k int, rng *rand.Rand, onExpand func()) {
	state := c.State
	site := state.Trace.NextSiteID(c.StaticID)

	b, ok := state.Bandits.Get(site)
	if !ok {
		log.Debug().Str("site", c.StaticID).Msg("no bandit learned at this site, dead end")
		return
	}

	resume := c.Resume
	for _, arm := range b.Arms() {
		value := arm.Value
		logDensity := c.Distribution.LogDensity(value)
		if math.IsNaN(logDensity) {
			continue
		}
		next, pastReward := state.WithSample(site, value, logDensity)

		f := -pastReward + Heuristic(arm.Belief, k, rng)
		if math.IsNaN(f) {
			continue
		}

		ol.Insert(f, func() any { return resume(value, next) })
		if onExpand != nil {
			onExpand()
		}
	}
}
