// Package feed retrieves the supplier remnants feed: a zip archive holding a
// spreadsheet with one row per product. Providers return the rows as
// inventory.Record values; any failure is a *errors.FeedError.
package feed

import (
	"context"

	"github.com/agentstation/stocksync/pkg/inventory"
)

// Provider fetches the current remnants.
type Provider interface {
	// Fetch returns every record of the feed in sheet order.
	Fetch(ctx context.Context) ([]inventory.Record, error)

	// Name identifies the feed in logs and errors.
	Name() string
}

// Static is a Provider serving fixed records.
type Static struct {
	Label   string
	Records []inventory.Record
	Err     error
}

// Fetch returns the configured records or error.
func (s *Static) Fetch(ctx context.Context) ([]inventory.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records, nil
}

// Name returns the label, or "static".
func (s *Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}
