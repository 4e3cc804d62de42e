package engine

// Options represents configuration options for the Engine.
type Options struct {
	// Instrument, when set, rejects every event that belongs to another instrument.
	Instrument string
	// TraceEvents logs every event at debug level before it is dispatched.
	TraceEvents bool
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{}
}

// Option mutates Options.
type Option func(*Options)

// WithInstrument binds the engine to a single instrument.
func WithInstrument(instrument string) Option {
	return func(o *Options) {
		o.Instrument = instrument
	}
}

// WithTraceEvents enables per-event debug logging.
func WithTraceEvents(enabled bool) Option {
	return func(o *Options) {
		o.TraceEvents = enabled
	}
}
