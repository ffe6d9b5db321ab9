package infer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"mapsearch/bandit"
	"mapsearch/prog"
	"mapsearch/trace"
)

// recordingSink is a test double for ResultSink: it records every call
// instead of rendering anywhere.
type recordingSink struct {
	predictsCalls []*prog.State
	predicts      []recordedPredict
}

type recordedPredict struct {
	name         string
	value        any
	weight       float64
	outputFormat string
}

func (s *recordingSink) EmitPredicts(state *prog.State, outputFormat string) {
	s.predictsCalls = append(s.predictsCalls, state)
}

func (s *recordingSink) EmitPredict(name string, value any, weight float64, outputFormat string) {
	s.predicts = append(s.predicts, recordedPredict{name, value, weight, outputFormat})
}

func stateWithTrace(logWeight float64, values ...any) *prog.State {
	tr := trace.New()
	for i, v := range values {
		site := tr.NextSiteID("x")
		tr = tr.Appended(trace.Entry{Site: site, Value: v, PastReward: float64(i)})
	}
	return &prog.State{Bandits: bandit.NewTable(), Trace: tr, LogWeight: logWeight}
}

func TestEmitTrace_ReportsWholeTraceUnderSyntheticName(t *testing.T) {
	sink := &recordingSink{}
	state := stateWithTrace(math.Log(2), "A", "B")

	EmitTrace(sink, state, "json")

	require.Len(t, sink.predicts, 1)
	got := sink.predicts[0]
	require.Equal(t, "$trace", got.name)
	require.Equal(t, []any{"A", "B"}, got.value)
	require.InDelta(t, 2.0, got.weight, 1e-9)
	require.Equal(t, "json", got.outputFormat)
}

func TestEmitTrace_EmptyTraceReportsEmptySlice(t *testing.T) {
	sink := &recordingSink{}
	state := stateWithTrace(0)

	EmitTrace(sink, state, "text")

	require.Len(t, sink.predicts, 1)
	require.Equal(t, []any{}, sink.predicts[0].value)
	require.InDelta(t, 1.0, sink.predicts[0].weight, 1e-9)
}

func TestReportResults_OnlyCallsRequestedResultKinds(t *testing.T) {
	sink := &recordingSink{}
	state := stateWithTrace(0, "A")

	options := DefaultOptions()
	options.Results = []string{"trace"}
	ReportResults(sink, state, options)

	require.Empty(t, sink.predictsCalls)
	require.Len(t, sink.predicts, 1)
	require.Equal(t, "$trace", sink.predicts[0].name)
}

func TestReportResults_PredictsAndTraceBothRequested(t *testing.T) {
	sink := &recordingSink{}
	state := stateWithTrace(0, "A")

	options := DefaultOptions()
	options.Results = []string{"predicts", "trace"}
	ReportResults(sink, state, options)

	require.Len(t, sink.predictsCalls, 1)
	require.Same(t, state, sink.predictsCalls[0])
	require.Len(t, sink.predicts, 1)
	require.Equal(t, "$trace", sink.predicts[0].name)
}
