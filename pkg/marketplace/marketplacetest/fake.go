// Package marketplacetest provides an in-memory Marketplace for tests.
package marketplacetest

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// Fake is a scripted marketplace account. Pages are served in order keyed by
// the cursor "" then "1", "2", ... unless Cursors is set. Submitted batches
// are recorded.
type Fake struct {
	MarketID    marketplace.ID
	AccountName string
	WarehouseID string
	Caps        marketplace.Limits

	// Pages are returned by ListOffers in order.
	Pages []marketplace.Page
	// ListErr fails ListOffers on the page with this index (1-based) when non-zero.
	ListErrAt int
	ListErr   error

	// StockErrs and PriceErrs fail the batch with the given 0-based index.
	StockErrs map[int]error
	PriceErrs map[int]error

	// OnSubmit runs before each submission is recorded.
	OnSubmit func(kind string, index int)

	mu          sync.Mutex
	cursors     []string
	StockCalls  [][]inventory.StockUpdate
	PriceCalls  [][]inventory.PriceUpdate
	ListedPages int
}

var _ marketplace.Marketplace = (*Fake)(nil)

// New returns a cursor-paginated fake with the given identifiers split into
// pages of pageSize.
func New(id marketplace.ID, account string, pageSize int, ids ...string) *Fake {
	f := &Fake{
		MarketID:    id,
		AccountName: account,
		Caps:        marketplace.Limits{Stocks: 2, Prices: 2, PageSize: pageSize},
	}
	for start := 0; start < len(ids); start += pageSize {
		end := min(start+pageSize, len(ids))
		f.Pages = append(f.Pages, marketplace.Page{IDs: ids[start:end]})
	}
	if len(f.Pages) == 0 {
		f.Pages = []marketplace.Page{{}}
	}
	for i := range f.Pages[:len(f.Pages)-1] {
		f.Pages[i].Next = strconv.Itoa(i + 1)
	}
	return f
}

// ID returns the marketplace ID.
func (f *Fake) ID() marketplace.ID { return f.MarketID }

// Account returns the account name.
func (f *Fake) Account() string { return f.AccountName }

// Warehouse returns the warehouse ID.
func (f *Fake) Warehouse() string { return f.WarehouseID }

// Limits returns the configured limits.
func (f *Fake) Limits() marketplace.Limits { return f.Caps }

// ListOffers serves the next scripted page.
func (f *Fake) ListOffers(ctx context.Context, cursor string) (*marketplace.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cursors = append(f.cursors, cursor)
	f.ListedPages++
	if f.ListErr != nil && f.ListedPages == f.ListErrAt {
		return nil, f.ListErr
	}
	if f.ListedPages > len(f.Pages) {
		return nil, fmt.Errorf("fake %s: page %d requested past the script", f.AccountName, f.ListedPages)
	}
	page := f.Pages[f.ListedPages-1]
	return &page, nil
}

// SubmitStocks records the batch.
func (f *Fake) SubmitStocks(ctx context.Context, updates []inventory.StockUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	index := len(f.StockCalls)
	if f.OnSubmit != nil {
		f.OnSubmit("stocks", index)
	}
	f.StockCalls = append(f.StockCalls, append([]inventory.StockUpdate(nil), updates...))
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.StockErrs[index]
}

// SubmitPrices records the batch.
func (f *Fake) SubmitPrices(ctx context.Context, updates []inventory.PriceUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	index := len(f.PriceCalls)
	if f.OnSubmit != nil {
		f.OnSubmit("prices", index)
	}
	f.PriceCalls = append(f.PriceCalls, append([]inventory.PriceUpdate(nil), updates...))
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.PriceErrs[index]
}

// Cursors returns the cursors ListOffers was called with.
func (f *Fake) Cursors() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cursors...)
}

// SubmittedStocks flattens every recorded stock batch.
func (f *Fake) SubmittedStocks() []inventory.StockUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []inventory.StockUpdate
	for _, c := range f.StockCalls {
		out = append(out, c...)
	}
	return out
}
