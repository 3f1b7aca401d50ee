package reconciler

import (
	"time"

	"github.com/agentstation/stocksync/pkg/errors"
)

// Strictness decides what happens to a feed value that cannot be parsed.
type Strictness int

const (
	// Strict fails the reconciliation phase with the parse error.
	Strict Strictness = iota
	// Lenient skips the record and counts it in Result.Skipped.
	Lenient
)

// String returns the strictness name.
func (s Strictness) String() string {
	if s == Lenient {
		return "lenient"
	}
	return "strict"
}

// options configures a reconciler.
type options struct {
	warehouse string
	clock     func() time.Time
	quantity  Strictness
	price     Strictness
}

func defaultOptions() *options {
	return &options{
		clock:    time.Now,
		quantity: Strict,
		price:    Lenient,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithWarehouse binds every stock update to a warehouse.
func WithWarehouse(id string) Option {
	return func(o *options) error {
		o.warehouse = id
		return nil
	}
}

// WithClock sets the source of StockUpdate.UpdatedAt.
func WithClock(clock func() time.Time) Option {
	return func(o *options) error {
		if clock == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.clock = clock
		return nil
	}
}

// WithQuantityStrictness sets how unparsable quantities are handled.
// The default is Strict.
func WithQuantityStrictness(s Strictness) Option {
	return func(o *options) error {
		if s != Strict && s != Lenient {
			return errors.NewValidationError("quantity_strictness", int(s), "unknown strictness")
		}
		o.quantity = s
		return nil
	}
}

// WithPriceStrictness sets how unusable prices are handled.
// The default is Lenient.
func WithPriceStrictness(s Strictness) Option {
	return func(o *options) error {
		if s != Strict && s != Lenient {
			return errors.NewValidationError("price_strictness", int(s), "unknown strictness")
		}
		o.price = s
		return nil
	}
}

// StrictnessFor maps a strict flag onto a Strictness.
func StrictnessFor(strict bool) Strictness {
	if strict {
		return Strict
	}
	return Lenient
}
