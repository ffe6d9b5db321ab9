package bandit

import (
	"math"

	"mapsearch/trace"
)

// Backpropagate walks entries in order, crediting each visited bandit with
// the future reward from that choice's vantage point: the terminal
// log-weight minus the log-weight accumulated before the choice was made.
// A NaN terminalLogWeight is the caller's signal to discard the run; this
// function does not check for it, since by the time entries/terminal are
// available the discard decision belongs to the caller (see
// engine.Backpropagate).
func Backpropagate(table *Table, entries []trace.Entry, terminalLogWeight float64) {
	for _, e := range entries {
		b := table.GetOrCreate(e.Site)
		b.Update(e.Value, terminalLogWeight-e.PastReward)
	}
}

// IsValidTerminal reports whether a terminal log-weight is usable for
// backpropagation, i.e. not NaN.
func IsValidTerminal(logWeight float64) bool {
	return !math.IsNaN(logWeight)
}
