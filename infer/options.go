// Package infer is the external entry point: it alternates learning
// passes with best-first search passes and emits the resulting MAP
// trace estimates.
package infer

// Options configures one call to InferMAP.
type Options struct {
	NumberOfPasses  int
	NumberOfSamples int
	NumberOfMaps    int
	NumberOfHDraws  int
	OutputFormat    string
	Results         []string
}

// Option mutates an Options value during construction.
type Option func(*Options)

// DefaultOptions returns the documented defaults: one pass, one MAP
// emitted per pass, K = 1, both predicts and trace reported.
// NumberOfSamples has no sensible default; callers must set it via
// WithSamples.
func DefaultOptions() Options {
	return Options{
		NumberOfPasses: 1,
		NumberOfMaps:   1,
		NumberOfHDraws: 1,
		Results:        []string{"predicts", "trace"},
	}
}

// WithPasses sets the number of outer learn-then-search iterations.
func WithPasses(n int) Option {
	return func(o *Options) { o.NumberOfPasses = n }
}

// WithSamples sets the number of learning runs performed per pass before
// searching. There is no default; InferMAP panics if this is left at 0.
func WithSamples(n int) Option {
	return func(o *Options) { o.NumberOfSamples = n }
}

// WithMaps sets how many terminal states are emitted per pass.
func WithMaps(n int) Option {
	return func(o *Options) { o.NumberOfMaps = n }
}

// WithHDraws sets K, the heuristic's number of draws (see searcher.Heuristic).
func WithHDraws(k int) Option {
	return func(o *Options) { o.NumberOfHDraws = k }
}

// WithOutputFormat sets the format string forwarded to the result sink.
func WithOutputFormat(format string) Option {
	return func(o *Options) { o.OutputFormat = format }
}

// WithResults sets which result kinds ("predicts", "trace") are reported.
func WithResults(results ...string) Option {
	return func(o *Options) { o.Results = results }
}
