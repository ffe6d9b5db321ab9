package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"mapsearch/bandit"
	"mapsearch/engine"
	"mapsearch/prog"
	"mapsearch/trace"
)

func learn(t *testing.T, program prog.Program, runs int, rng *rand.Rand) *prog.State {
	t.Helper()
	d := engine.NewLearningDriver(rng)
	begin := &prog.State{Bandits: bandit.NewTable(), Trace: trace.New()}
	for i := 0; i < runs; i++ {
		terminal := d.Run(program, begin.Bandits)
		if next := engine.Backpropagate(terminal); next != nil {
			begin = next
		}
	}
	return begin
}

func singleChoiceProgram(state *prog.State) prog.Checkpoint {
	dist := prog.NewDiscrete([]any{"A", "B"}, []float64{0.7, 0.3})
	return prog.NewSample(dist, "choice", state, func(v any, s *prog.State) prog.Checkpoint {
		return prog.NewResult(s)
	})
}

func zeroChoiceProgram(state *prog.State) prog.Checkpoint {
	return prog.NewResult(state)
}

func fourWaySupportProgram(state *prog.State) prog.Checkpoint {
	dist := prog.NewDiscrete([]any{1, 2, 3, 4}, []float64{0.25, 0.25, 0.25, 0.25})
	return prog.NewSample(dist, "pick", state, func(v any, s *prog.State) prog.Checkpoint {
		return prog.NewResult(s)
	})
}

func TestSearch_DeterministicSingleChoiceRanksHigherWeightBest(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	begin := learn(t, singleChoiceProgram, 20, rng)

	best := math.Inf(-1)
	var bestValue any
	for state := range Search(singleChoiceProgram, begin, 0, rng, nil) {
		if state.LogWeight > best {
			best = state.LogWeight
			bestValue = state.Trace.Entries()[0].Value
		}
	}
	require.Equal(t, "A", bestValue)
}

func TestSearch_ZeroChoiceProgramEmitsOnceThenExhausts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	begin := &prog.State{Bandits: bandit.NewTable(), Trace: trace.New()}

	count := 0
	for range Search(zeroChoiceProgram, begin, 0, rng, nil) {
		count++
	}
	require.Equal(t, 1, count)
}

func TestSearch_LazyStreamExhaustsAtSupportSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	begin := learn(t, fourWaySupportProgram, 40, rng)

	count := 0
	for range Search(fourWaySupportProgram, begin, 0, rng, nil) {
		count++
		if count > 100 {
			t.Fatal("search did not terminate within a reasonable bound")
		}
	}
	require.Equal(t, 4, count)
}

func TestSearch_KZeroOrdersStrictlyByPastReward(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	begin := learn(t, fourWaySupportProgram, 40, rng)

	var logWeights []float64
	for state := range Search(fourWaySupportProgram, begin, 0, rng, nil) {
		logWeights = append(logWeights, state.LogWeight)
	}
	require.Len(t, logWeights, 4)
	for i := 1; i < len(logWeights); i++ {
		require.LessOrEqual(t, logWeights[i], logWeights[i-1]+1e-9)
	}
}

func TestSearch_ConsumerCanStopEarlyWithoutDraining(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	begin := learn(t, fourWaySupportProgram, 40, rng)

	count := 0
	for range Search(fourWaySupportProgram, begin, 0, rng, nil) {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestSearch_NaNLogDensityDropsChildWithoutCrashing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Build a bandit with one real arm directly, then search a program
	// whose distribution reports NaN log-density for every value: the
	// single expanded child must be dropped, not crash the search.
	table := bandit.NewTable()
	site := trace.SiteID{StaticID: "x", Occurrence: 0}
	table.GetOrCreate(site).Update("only", 1.0)

	program := func(state *prog.State) prog.Checkpoint {
		return prog.NewSample(nanDist{}, "x", state, func(v any, s *prog.State) prog.Checkpoint {
			return prog.NewResult(s)
		})
	}

	begin := &prog.State{Bandits: table, Trace: trace.New()}
	count := 0
	for range Search(program, begin, 0, rng, nil) {
		count++
	}
	require.Equal(t, 0, count)
}

type nanDist struct{}

func (nanDist) Sample(rng *rand.Rand) any { return "only" }
func (nanDist) LogDensity(v any) float64  { return math.NaN() }
