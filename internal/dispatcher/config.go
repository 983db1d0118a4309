package dispatcher

import "log/slog"

// DefaultMaxRewrites is the rewrite bound used when Config.MaxRewrites is
// not positive.
const DefaultMaxRewrites = 8

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handlers, interceptors and notification hooks
	// in panic recovery.
	RecoverFromPanic bool

	// MaxRewrites bounds how many times interceptors may rewrite a single
	// action before dispatch fails. Zero means DefaultMaxRewrites.
	MaxRewrites int

	// MaxRepeatCount limits the maximum repeat count for actions.
	// Zero means no limit.
	MaxRepeatCount int

	// Logger receives dispatch diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		MaxRewrites:      DefaultMaxRewrites,
		MaxRepeatCount:   10000,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithMaxRewrites returns a copy of the config with the rewrite bound set.
func (c Config) WithMaxRewrites(n int) Config {
	c.MaxRewrites = n
	return c
}

// WithMaxRepeatCount returns a copy of the config with the max repeat count set.
func (c Config) WithMaxRepeatCount(max int) Config {
	c.MaxRepeatCount = max
	return c
}

// WithLogger returns a copy of the config with the logger set.
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}

func (c Config) logger() *slog.Logger {
	l := c.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return l.With("component", "dispatch")
}
