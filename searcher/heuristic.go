package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"mapsearch/belief"
)

// Heuristic estimates the remaining cost to go from a belief over future
// reward, governed by k (the number of heuristic draws):
//
//   - k > 0: draw k samples from b, negate their maximum, clamp at 0.
//   - k == 0: always 0 (Dijkstra — guarantees optimal search order).
//   - k < 0: the belief's mode, deterministic and biased but fast.
func Heuristic(b belief.Belief, k int, rng *rand.Rand) float64 {
	switch {
	case k == 0:
		return 0
	case k < 0:
		return b.Mode()
	default:
		max := math.Inf(-1)
		for i := 0; i < k; i++ {
			if s := b.Sample(rng); s > max {
				max = s
			}
		}
		h := -max
		if math.IsNaN(h) || h < 0 {
			h = 0
		}
		return h
	}
}
