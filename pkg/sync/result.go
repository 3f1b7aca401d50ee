package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// Result represents the complete result of a sync run.
type Result struct {
	RunID      string          `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time       `json:"finished_at" yaml:"finished_at"`
	DryRun     bool            `json:"dry_run" yaml:"dry_run"`
	Feed       string          `json:"feed" yaml:"feed"`
	Records    int             `json:"records" yaml:"records"` // Feed records fetched
	Accounts   []AccountResult `json:"accounts" yaml:"accounts"`
}

// AccountResult represents the outcome for one marketplace account.
type AccountResult struct {
	Marketplace marketplace.ID `json:"marketplace" yaml:"marketplace"`
	Account     string         `json:"account" yaml:"account"`
	Warehouse   string         `json:"warehouse,omitempty" yaml:"warehouse,omitempty"`
	Offers      int            `json:"offers" yaml:"offers"`
	Skipped     int            `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Stocks      PhaseResult    `json:"stocks" yaml:"stocks"`
	Prices      PhaseResult    `json:"prices" yaml:"prices"`

	// Err is an account-level failure: the offer fetch or a reconciliation
	// parse error. Batch failures live on the phase results.
	Err error `json:"-" yaml:"-"`
}

// PhaseResult represents the stock or price upload of one account.
type PhaseResult struct {
	Records int           `json:"records" yaml:"records"`
	InStock int           `json:"in_stock,omitempty" yaml:"in_stock,omitempty"`
	Batches []BatchResult `json:"batches,omitempty" yaml:"batches,omitempty"`
	Err     error         `json:"-" yaml:"-"`
}

// BatchResult represents one submitted (or planned) batch.
type BatchResult struct {
	Index int   `json:"index" yaml:"index"`
	Size  int   `json:"size" yaml:"size"`
	Err   error `json:"-" yaml:"-"`
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// HasFailures returns true if any account, phase or batch failed.
func (r *Result) HasFailures() bool {
	return len(r.Failed()) > 0
}

// Failed returns the accounts that recorded any failure.
func (r *Result) Failed() []AccountResult {
	var out []AccountResult
	for _, a := range r.Accounts {
		if a.Failed() {
			out = append(out, a)
		}
	}
	return out
}

// Err joins every recorded failure, or returns nil.
func (r *Result) Err() error {
	var errs []error
	for _, a := range r.Accounts {
		errs = append(errs, a.errs()...)
	}
	return errors.Join(errs...)
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	}

	var stocks, prices, batches, failed int
	for _, a := range r.Accounts {
		stocks += a.Stocks.Records
		prices += a.Prices.Records
		batches += len(a.Stocks.Batches) + len(a.Prices.Batches)
		failed += a.FailedBatches()
	}
	parts = append(parts, fmt.Sprintf("%d accounts", len(r.Accounts)))
	parts = append(parts, fmt.Sprintf("%d stock updates", stocks))
	parts = append(parts, fmt.Sprintf("%d price updates", prices))
	parts = append(parts, fmt.Sprintf("%d batches", batches))
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed batches", failed))
	}
	if n := len(r.Failed()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d accounts with failures", n))
	}

	return strings.Join(parts, ", ")
}

// Failed returns true if the account recorded any failure.
func (a *AccountResult) Failed() bool {
	return len(a.errs()) > 0
}

// FailedBatches counts failed batches across both phases.
func (a *AccountResult) FailedBatches() int {
	return a.Stocks.FailedBatches() + a.Prices.FailedBatches()
}

// Summary returns a one-line summary for the account.
func (a *AccountResult) Summary() string {
	if a.Err != nil {
		return fmt.Sprintf("%s/%s: %v", a.Marketplace, a.Account, a.Err)
	}
	return fmt.Sprintf("%s/%s: %d offers, %d stocks (%d in stock), %d prices, %d failed batches",
		a.Marketplace, a.Account, a.Offers, a.Stocks.Records, a.Stocks.InStock, a.Prices.Records, a.FailedBatches())
}

func (a *AccountResult) errs() []error {
	var errs []error
	if a.Err != nil {
		errs = append(errs, a.Err)
	}
	errs = append(errs, a.Stocks.errs()...)
	errs = append(errs, a.Prices.errs()...)
	return errs
}

// FailedBatches counts the failed batches of the phase.
func (p *PhaseResult) FailedBatches() int {
	n := 0
	for _, b := range p.Batches {
		if b.Err != nil {
			n++
		}
	}
	return n
}

func (p *PhaseResult) errs() []error {
	var errs []error
	if p.Err != nil {
		errs = append(errs, p.Err)
	}
	for _, b := range p.Batches {
		if b.Err != nil {
			errs = append(errs, b.Err)
		}
	}
	return errs
}
