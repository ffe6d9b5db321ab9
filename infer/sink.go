package infer

import (
	"math"

	"mapsearch/prog"
)

// ResultSink is the consumed output interface: a caller-supplied receiver
// of named, weighted predictions. It is an external collaborator — the
// formatting and destination (stdout, a file, a socket) belong to it, not
// to this package.
type ResultSink interface {
	EmitPredicts(state *prog.State, outputFormat string)
	EmitPredict(name string, value any, weight float64, outputFormat string)
}

// EmitTrace reports a terminal state's whole trace to sink under the
// synthetic name "$trace", as the sequence of chosen values, weighted by
// exp(state.LogWeight).
func EmitTrace(sink ResultSink, state *prog.State, outputFormat string) {
	entries := state.Trace.Entries()
	values := make([]any, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	sink.EmitPredict("$trace", values, math.Exp(state.LogWeight), outputFormat)
}
