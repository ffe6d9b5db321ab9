package infer

import (
	"iter"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mapsearch/bandit"
	"mapsearch/engine"
	"mapsearch/prog"
	"mapsearch/searcher"
	"mapsearch/trace"
)

// InferMAP alternates learning passes with best-first search passes over
// program, returning a lazy sequence of the terminal states each pass's
// search emits.
//
// Each pass discards the previous pass's bandit table, runs
// NumberOfSamples learning runs (carrying the table forward across runs,
// skipping backpropagation for any run whose terminal log-weight is
// NaN), then searches from the learned table and emits up to
// NumberOfMaps terminal states before moving to the next pass.
//
// Panics if NumberOfSamples <= 0: there is no sensible default, and
// running zero learning samples would search an empty bandit table and
// emit nothing useful.
func InferMAP(program prog.Program, rng *rand.Rand, opts ...Option) iter.Seq[*prog.State] {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}
	if options.NumberOfSamples <= 0 {
		panic("infer: NumberOfSamples must be set via WithSamples")
	}

	return InferMAPWithCollector(program, rng, noopCollector{}, options)
}

// InferMAPWithCollector is InferMAP with an explicit metrics Collector and
// pre-resolved Options, for callers that want observability into pass/run
// counts without constructing their own orchestration loop.
func InferMAPWithCollector(program prog.Program, rng *rand.Rand, collector Collector, options Options) iter.Seq[*prog.State] {
	return func(yield func(*prog.State) bool) {
		driver := engine.NewLearningDriver(rng)

		for pass := 0; pass < options.NumberOfPasses; pass++ {
			table := bandit.NewTable()

			for i := 0; i < options.NumberOfSamples; i++ {
				terminal := driver.Run(program, table)
				if next := engine.Backpropagate(terminal); next != nil {
					collector.RunCompleted()
				} else {
					collector.RunDiscarded()
				}
			}

			log.Info().Int("pass", pass).Int("bandits", table.Len()).Msg("learning pass complete, searching")

			begin := &prog.State{Bandits: table, Trace: trace.New()}
			emitted := 0
			for state := range searcher.Search(program, begin, options.NumberOfHDraws, rng, collector.NodeExpanded) {
				collector.MapEmitted()
				if !yield(state) {
					return
				}
				emitted++
				if emitted >= options.NumberOfMaps {
					break
				}
			}

			collector.PassCompleted()
		}
	}
}

// ReportResults sends a terminal state to sink according to which result
// kinds the options request ("predicts", "trace").
func ReportResults(sink ResultSink, state *prog.State, options Options) {
	if slices.Contains(options.Results, "predicts") {
		sink.EmitPredicts(state, options.OutputFormat)
	}
	if slices.Contains(options.Results, "trace") {
		EmitTrace(sink, state, options.OutputFormat)
	}
}
