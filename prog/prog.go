// Package prog defines the interface a probabilistic program exposes to
// the inference engine: a CPS-style chain of checkpoints where execution
// pauses at each random choice and resumes once the engine supplies a
// value.
//
// The front-end that parses a probabilistic program and CPS-transforms it
// into this shape is an external collaborator; this package only fixes
// the contract the engine consumes, plus a couple of concrete
// distributions so the engine is exercisable on its own.
package prog

import (
	"golang.org/x/exp/rand"

	"mapsearch/bandit"
	"mapsearch/trace"
)

// Distribution is a sampleable prior with a log-density, the two
// operations the engine needs from a random-choice's distribution.
type Distribution interface {
	Sample(rng *rand.Rand) any
	LogDensity(value any) float64
}

// State is the program state threaded through a run: the accumulated
// log-weight, the bandit table learned across runs in the current pass,
// and the trace of choices made so far in this run.
//
// AddLogWeight is the mutating operation a program uses directly, e.g. to
// record an observation's log-likelihood between choice points. The
// engine and searcher never mutate a State in place when branching;
// instead they build a fresh one via WithSample so that sibling branches
// never alias each other's trace.
type State struct {
	LogWeight float64
	Bandits   *bandit.Table
	Trace     *trace.Trace
}

// NewState returns the empty state a pass begins a run from: no bandits
// learned yet (for the very first run of a pass; later runs reuse the
// table carried forward from backpropagation), zero weight, empty trace.
func NewState() *State {
	return &State{Bandits: bandit.NewTable(), Trace: trace.New()}
}

// AddLogWeight adds r to the state's accumulated log-weight in place.
func (s *State) AddLogWeight(r float64) {
	s.LogWeight += r
}

// WithSample returns a new State reflecting a choice of value at site,
// whose distribution contributed logDensity to the log-weight, along with
// the log-weight the state carried immediately before this choice (its
// past reward). The receiver is left untouched; Bandits is shared by
// reference since the search engine only reads arms, never writes them.
func (s *State) WithSample(site trace.SiteID, value any, logDensity float64) (next *State, pastReward float64) {
	pastReward = s.LogWeight
	next = &State{
		LogWeight: s.LogWeight + logDensity,
		Bandits:   s.Bandits,
		Trace:     s.Trace.Appended(trace.Entry{Site: site, Value: value, PastReward: pastReward}),
	}
	return next, pastReward
}

// Checkpoint is a suspension point of a program run: either a Sample
// (awaiting a value) or a Result (terminal).
type Checkpoint interface {
	isCheckpoint()
}

// Sample pauses the program at a random choice. Resume must be invoked
// with the chosen value and the State the engine computed via
// WithSample, returning the next checkpoint.
type Sample struct {
	Distribution Distribution
	StaticID     string
	State        *State
	Resume       func(value any, state *State) Checkpoint
}

func (Sample) isCheckpoint() {}

// Result is a terminal checkpoint carrying the run's final state.
type Result struct {
	State *State
}

func (Result) isCheckpoint() {}

// Program is the entry point into one run of a CPS-transformed
// probabilistic program.
type Program func(state *State) Checkpoint

// NewSample is a convenience constructor for a Sample checkpoint.
func NewSample(dist Distribution, staticID string, state *State, resume func(any, *State) Checkpoint) Checkpoint {
	return Sample{Distribution: dist, StaticID: staticID, State: state, Resume: resume}
}

// NewResult is a convenience constructor for a Result checkpoint.
func NewResult(state *State) Checkpoint {
	return Result{State: state}
}
