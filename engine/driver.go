// Package engine runs a probabilistic program to completion in learning
// mode, consulting and updating a bandit table at every random choice,
// and folds a terminal state's log-weight back into that table.
package engine

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mapsearch/bandit"
	"mapsearch/prog"
	"mapsearch/trace"
)

// LearningDriver runs a program once from a given bandit table, choosing
// a value at each random choice via the table's bandits when one exists,
// falling back to the distribution's own prior otherwise.
type LearningDriver struct {
	rng *rand.Rand
}

// NewLearningDriver returns a driver that draws randomness from rng.
func NewLearningDriver(rng *rand.Rand) *LearningDriver {
	return &LearningDriver{rng: rng}
}

// Run drives program from the empty trace, reusing bandits across the
// run, via a trampoline so deeply-nested programs do not grow the Go
// call stack with each resumed continuation.
func (d *LearningDriver) Run(program prog.Program, bandits *bandit.Table) *prog.State {
	state := &prog.State{Bandits: bandits, Trace: trace.New()}
	cp := program(state)

	for {
		switch c := cp.(type) {
		case prog.Sample:
			cp = d.step(c)
		case prog.Result:
			return c.State
		default:
			panic("engine: program yielded an unknown checkpoint type")
		}
	}
}

func (d *LearningDriver) step(c prog.Sample) prog.Checkpoint {
	state := c.State
	site := state.Trace.NextSiteID(c.StaticID)

	value := d.choose(c, site)
	logDensity := c.Distribution.LogDensity(value)
	next, _ := state.WithSample(site, value, logDensity)

	log.Debug().Str("site", c.StaticID).Int("occurrence", site.Occurrence).
		Interface("value", value).Msg("learning driver chose value")

	return c.Resume(value, next)
}

func (d *LearningDriver) choose(c prog.Sample, site trace.SiteID) any {
	b, exists := c.State.Bandits.Get(site)
	if exists {
		if v, ok := b.SelectArm(d.rng); ok {
			return v
		}
	}
	return c.Distribution.Sample(d.rng)
}

// Backpropagate folds a run's terminal log-weight into its bandit table
// and returns the state the next run in the pass should begin from: the
// same table, an empty trace, zero weight. It returns nil when the
// terminal log-weight is NaN, signalling the caller to discard the run
// and keep the previous begin_state.
func Backpropagate(terminal *prog.State) *prog.State {
	if !bandit.IsValidTerminal(terminal.LogWeight) {
		log.Warn().Msg("discarding run with NaN terminal log-weight")
		return nil
	}
	bandit.Backpropagate(terminal.Bandits, terminal.Trace.Entries(), terminal.LogWeight)
	return &prog.State{Bandits: terminal.Bandits, Trace: trace.New(), LogWeight: 0}
}
