package reconciler

import (
	"fmt"

	"github.com/agentstation/stocksync/pkg/inventory"
)

// Result holds both update lists of one account.
type Result struct {
	Stocks []inventory.StockUpdate
	Prices []inventory.PriceUpdate

	// Matched counts offers found in the feed.
	Matched int
	// ZeroFilled counts offers absent from the feed and reported as out of stock.
	ZeroFilled int
	// Skipped counts feed records dropped under lenient strictness.
	Skipped int
}

// InStock returns the stock updates with a non-zero count.
func (r *Result) InStock() []inventory.StockUpdate {
	return InStock(r.Stocks)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d stock updates (%d matched, %d zero-filled), %d price updates, %d skipped",
		len(r.Stocks), r.Matched, r.ZeroFilled, len(r.Prices), r.Skipped)
}

// InStock filters updates down to those with a non-zero count.
func InStock(updates []inventory.StockUpdate) []inventory.StockUpdate {
	out := make([]inventory.StockUpdate, 0, len(updates))
	for _, u := range updates {
		if u.InStock() {
			out = append(out, u)
		}
	}
	return out
}
