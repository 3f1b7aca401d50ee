package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/stocksync/pkg/batch"
	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/feed"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/marketplace"
	"github.com/agentstation/stocksync/pkg/reconciler"
)

// Phase names used in logs and batch errors.
const (
	KindStocks = "stocks"
	KindPrices = "prices"
)

// ErrSkipped marks a phase that never ran because fail-fast stopped its account.
var ErrSkipped = errors.New("skipped after an earlier failure")

// Syncer pushes one feed to a fixed list of marketplace accounts.
type Syncer struct {
	hooks

	feed    feed.Provider
	markets []marketplace.Marketplace
	options *Options
}

// New creates a Syncer. Options derived from cfg.Sync are applied first, so
// opts override them. A non-nil cfg is validated.
func New(cfg *config.Config, provider feed.Provider, markets []marketplace.Marketplace, opts ...Option) (*Syncer, error) {
	options := Defaults()
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		options.Apply(FromConfig(cfg.Sync)...)
	}
	options.Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	if provider == nil {
		return nil, errors.NewValidationError("feed", nil, "a feed provider is required")
	}
	if len(markets) == 0 {
		return nil, errors.NewValidationError("markets", 0, "at least one marketplace account is required")
	}
	for _, m := range markets {
		l := m.Limits()
		if l.Stocks <= 0 || l.Prices <= 0 {
			return nil, errors.NewValidationError(
				fmt.Sprintf("%s/%s limits", m.ID(), m.Account()), l, "batch limits must be positive")
		}
	}

	return &Syncer{
		feed:    provider,
		markets: markets,
		options: options,
	}, nil
}

// Options returns the effective options.
func (s *Syncer) Options() Options {
	return *s.options
}

// Run fetches the feed and synchronizes every account in order.
// Only a feed failure aborts the run; every other failure is recorded in the
// returned Result.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	// Step 1: Apply the run timeout
	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	// Step 2: Tag the run
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: s.options.Clock().UTC(),
		DryRun:    s.options.DryRun,
		Feed:      s.feed.Name(),
	}
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.FromContext(ctx)

	logger.Info().
		Str("feed", result.Feed).
		Int("accounts", len(s.markets)).
		Bool("dry_run", result.DryRun).
		Msg("Starting sync")

	// Step 3: Fetch the feed once for every account
	records, err := s.feed.Fetch(ctx)
	if err != nil {
		if !errors.IsFeedUnavailable(err) {
			err = errors.NewFeedError(s.feed.Name(), "fetch", err)
		}
		logger.Error().Err(err).Msg("Feed unavailable, nothing synchronized")
		return nil, err
	}
	result.Records = len(records)
	logger.Info().Int("records", len(records)).Msg("Feed fetched")

	// Step 4: Synchronize accounts sequentially
	for _, m := range s.markets {
		account := s.syncAccount(ctx, m, records)
		result.Accounts = append(result.Accounts, account)
		s.hooks.account(account)
	}

	// Step 5: Log run summary
	result.FinishedAt = s.options.Clock().UTC()
	event := logger.Info()
	if result.HasFailures() {
		event = logger.Warn()
	}
	event.
		Dur("duration", result.Duration()).
		Int("failed_accounts", len(result.Failed())).
		Msg(result.Summary())

	return result, nil
}

// syncAccount runs fetch, reconcile and both uploads for one account.
func (s *Syncer) syncAccount(ctx context.Context, m marketplace.Marketplace, records []inventory.Record) AccountResult {
	ctx = logging.WithMarketplace(ctx, m.ID().String())
	ctx = logging.WithAccount(ctx, m.Account())
	logger := logging.FromContext(ctx)

	account := AccountResult{
		Marketplace: m.ID(),
		Account:     m.Account(),
		Warehouse:   m.Warehouse(),
	}

	offers, err := marketplace.FetchOffers(ctx, m)
	if err != nil {
		account.Err = err
		logger.Error().Err(err).Msg("Could not fetch offers")
		return account
	}
	account.Offers = offers.Len()

	rec, err := reconciler.New(s.options.reconcilerOptions(m.Warehouse())...)
	if err != nil {
		account.Err = err
		return account
	}
	plan, err := rec.Reconcile(records, offers)
	if err != nil {
		account.Err = err
		logger.Error().Err(err).Msg("Reconciliation failed")
		return account
	}
	account.Skipped = plan.Skipped
	logger.Debug().
		Int("offers", account.Offers).
		Int("matched", plan.Matched).
		Int("zero_filled", plan.ZeroFilled).
		Int("skipped", plan.Skipped).
		Msg(plan.Summary())

	limits := m.Limits()

	account.Stocks = PhaseResult{
		Records: len(plan.Stocks),
		InStock: len(plan.InStock()),
	}
	account.Stocks.Batches = upload(ctx, s, m, KindStocks, plan.Stocks, limits.Stocks, m.SubmitStocks)

	account.Prices = PhaseResult{Records: len(plan.Prices)}
	if s.options.FailFast && account.Stocks.FailedBatches() > 0 {
		account.Prices.Err = fmt.Errorf("%s/%s prices: %w", m.ID(), m.Account(), ErrSkipped)
	} else {
		account.Prices.Batches = upload(ctx, s, m, KindPrices, plan.Prices, limits.Prices, m.SubmitPrices)
	}

	logger.Info().
		Int("offers", account.Offers).
		Int("stocks", account.Stocks.Records).
		Int("in_stock", account.Stocks.InStock).
		Int("prices", account.Prices.Records).
		Int("failed_batches", account.FailedBatches()).
		Msg("Account synchronized")

	return account
}

// upload divides items into batches of size and submits them in order.
// A failed batch is recorded and the next one is still attempted unless
// fail-fast is set. Once ctx is done, every remaining batch is recorded as
// failed with the context error.
func upload[T any](ctx context.Context, s *Syncer, m marketplace.Marketplace, kind string, items []T, size int, submit func(context.Context, []T) error) []BatchResult {
	ctx = logging.WithOperation(ctx, "upload_"+kind)
	logger := logging.FromContext(ctx)
	total := batch.Count(len(items), size)
	results := make([]BatchResult, 0, total)

	index := 0
	for chunk := range batch.Divide(items, size) {
		res := BatchResult{Index: index, Size: len(chunk)}

		var err error
		switch {
		case ctx.Err() != nil:
			err = ctx.Err()
		case s.options.DryRun:
		default:
			err = submit(ctx, chunk)
		}
		if err != nil {
			res.Err = &errors.BatchError{
				Marketplace: m.ID().String(),
				Account:     m.Account(),
				Kind:        kind,
				Index:       index,
				Size:        len(chunk),
				Err:         err,
			}
			logger.Error().Err(err).Str("kind", kind).Int("batch", index).Int("size", len(chunk)).Msg("Batch failed")
		} else {
			logger.Debug().Str("kind", kind).Int("batch", index).Int("size", len(chunk)).Bool("dry_run", s.options.DryRun).Msg("Batch done")
		}

		results = append(results, res)
		s.hooks.batch(BatchEvent{
			Marketplace: m.ID(),
			Account:     m.Account(),
			Kind:        kind,
			Total:       total,
			Batch:       res,
		})
		index++

		if err != nil && s.options.FailFast {
			break
		}
	}

	return results
}
