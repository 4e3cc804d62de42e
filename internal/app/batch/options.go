package batch

// Options configures a Runner.
type Options struct {
	// Parallelism bounds how many instrument engines run at once.
	Parallelism int
	TraceEvents bool
}

// DefaultRunnerOptions returns the default options.
func DefaultRunnerOptions() *Options {
	return &Options{
		Parallelism: 4,
	}
}

// Option configures a Runner.
type Option func(*Options)

// WithParallelism sets the number of engines allowed to run concurrently. Values below
// one are ignored.
func WithParallelism(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Parallelism = n
		}
	}
}

// WithTraceEvents enables per-event debug logging in every engine.
func WithTraceEvents(enabled bool) Option {
	return func(o *Options) {
		o.TraceEvents = enabled
	}
}
