// Package sync runs one stock and price synchronization: it fetches the
// supplier feed once, then walks every marketplace account, reconciles the
// feed against the account's offers and uploads the updates in batches.
package sync

import (
	"time"

	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/reconciler"
)

// Options controls the orchestration of a Syncer run.
type Options struct {
	// Orchestration control
	DryRun   bool          // Reconcile and batch without submitting
	FailFast bool          // Stop an account at its first failed batch
	Timeout  time.Duration // Timeout for the entire run (0 means none)

	// Reconciliation control
	QuantityStrictness reconciler.Strictness
	PriceStrictness    reconciler.Strictness

	// Clock stamps stock updates and run times.
	Clock func() time.Time
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:             false,
		FailFast:           false,
		Timeout:            0,
		QuantityStrictness: reconciler.Strict,
		PriceStrictness:    reconciler.Lenient,
		Clock:              time.Now,
	}
}

// FromConfig returns the options described by the sync section of cfg.
func FromConfig(cfg config.SyncConfig) []Option {
	return []Option{
		WithDryRun(cfg.DryRun),
		WithFailFast(cfg.FailFast),
		WithTimeout(cfg.Timeout),
		WithQuantityStrictness(reconciler.StrictnessFor(cfg.QuantityStrict())),
		WithPriceStrictness(reconciler.StrictnessFor(cfg.PriceStrict())),
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	if s.Clock == nil {
		return &errors.ValidationError{
			Field:   "Clock",
			Message: "clock is required",
		}
	}
	return nil
}

// reconcilerOptions converts sync options to reconciler options for one warehouse.
func (s *Options) reconcilerOptions(warehouse string) []reconciler.Option {
	return []reconciler.Option{
		reconciler.WithWarehouse(warehouse),
		reconciler.WithClock(s.Clock),
		reconciler.WithQuantityStrictness(s.QuantityStrictness),
		reconciler.WithPriceStrictness(s.PriceStrictness),
	}
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithFailFast configures fail-fast behavior.
func WithFailFast(failFast bool) Option {
	return func(opts *Options) {
		opts.FailFast = failFast
	}
}

// WithTimeout configures the run timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithQuantityStrictness configures how unparsable quantities are handled.
func WithQuantityStrictness(s reconciler.Strictness) Option {
	return func(opts *Options) {
		opts.QuantityStrictness = s
	}
}

// WithPriceStrictness configures how unusable prices are handled.
func WithPriceStrictness(s reconciler.Strictness) Option {
	return func(opts *Options) {
		opts.PriceStrictness = s
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}
