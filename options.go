package bzlconfig

import (
	"errors"
	"log/slog"
)

// defaultMaxConcurrency bounds the number of targets analyzed in parallel.
const defaultMaxConcurrency = 5

// Option configures resolution behavior.
type Option func(*config) error

// config holds all resolution configuration.
type config struct {
	maxConcurrency int

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithLogger sets a structured logger for resolution diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "bzlconfig")
//	ResolveXcodeConfig(ctx, env, flags, WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithMaxConcurrency sets how many targets an Analyzer evaluates at once.
func WithMaxConcurrency(n int) Option {
	return func(c *config) error {
		c.maxConcurrency = n
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *config) validate() error {
	if c.maxConcurrency < 1 {
		return errors.New("max concurrency must be at least 1")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}

// newConfig applies opts over the defaults and validates the result.
func newConfig(opts ...Option) (*config, error) {
	c := &config{maxConcurrency: defaultMaxConcurrency}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
