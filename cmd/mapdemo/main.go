// Command mapdemo runs MAP trace inference against a couple of small
// example programs and prints the first MAP estimate found for each.
package main

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mapsearch/infer"
	"mapsearch/prog"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

	runDemo("single discrete choice", singleChoiceProgram, rng,
		infer.WithSamples(50), infer.WithMaps(1), infer.WithHDraws(0))

	runDemo("two observed binary choices", twoBinaryChoicesObservedProgram, rng,
		infer.WithSamples(500), infer.WithMaps(1), infer.WithHDraws(0))

	runDemo("continuous choice toward an observation", continuousChoiceObservedProgram, rng,
		infer.WithSamples(200), infer.WithMaps(1), infer.WithHDraws(-1))
}

func runDemo(name string, program prog.Program, rng *rand.Rand, opts ...infer.Option) {
	fmt.Printf("=== %s ===\n", name)
	collector := infer.NewAtomicCollector()
	options := infer.DefaultOptions()
	for _, o := range opts {
		o(&options)
	}

	for state := range infer.InferMAPWithCollector(program, rng, collector, options) {
		infer.ReportResults(consoleSink{}, state, options)
	}

	snap := collector.Snapshot()
	log.Info().Int64("runs", snap.Runs).Int64("discarded", snap.Discarded).
		Int64("maps_emitted", snap.MapsEmitted).Msg("demo finished")
}

// consoleSink is the stdout-backed infer.ResultSink for this command: each
// named prediction is printed on its own line, weighted by the emitting
// state's exp(LogWeight).
type consoleSink struct{}

func (consoleSink) EmitPredict(name string, value any, weight float64, outputFormat string) {
	fmt.Printf("  %s = %v (weight %.4f)\n", name, value, weight)
}

func (s consoleSink) EmitPredicts(state *prog.State, outputFormat string) {
	weight := math.Exp(state.LogWeight)
	for _, e := range state.Trace.Entries() {
		s.EmitPredict(e.Site.StaticID, e.Value, weight, outputFormat)
	}
}

func singleChoiceProgram(state *prog.State) prog.Checkpoint {
	dist := prog.NewDiscrete([]any{"A", "B"}, []float64{0.7, 0.3})
	return prog.NewSample(dist, "choice", state, func(v any, s *prog.State) prog.Checkpoint {
		return prog.NewResult(s)
	})
}

func twoBinaryChoicesObservedProgram(state *prog.State) prog.Checkpoint {
	dist := prog.NewDiscrete([]any{0, 1}, []float64{0.5, 0.5})
	return prog.NewSample(dist, "x", state, func(v1 any, s1 *prog.State) prog.Checkpoint {
		return prog.NewSample(dist, "x", s1, func(v2 any, s2 *prog.State) prog.Checkpoint {
			if v1 == 1 && v2 == 1 {
				s2.AddLogWeight(2.0)
			}
			return prog.NewResult(s2)
		})
	})
}

func continuousChoiceObservedProgram(state *prog.State) prog.Checkpoint {
	dist := prog.NormalDist{Mu: 0, Sigma: 1}
	return prog.NewSample(dist, "x", state, func(v any, s *prog.State) prog.Checkpoint {
		x := v.(float64)
		s.AddLogWeight(-(x - 3) * (x - 3))
		return prog.NewResult(s)
	})
}
