// Package marketplace defines the capability every marketplace adapter
// exposes to the sync orchestrator, and the offer catalog fetcher built on it.
//
// Adapters translate between these marketplace-agnostic types and their
// platform's wire shapes. One Marketplace value serves one account: a Yandex
// campaign or an Ozon seller client.
package marketplace

import (
	"context"

	"github.com/agentstation/stocksync/pkg/inventory"
)

// ID identifies a marketplace platform.
type ID string

// Known marketplaces.
const (
	Yandex ID = "yandex"
	Ozon   ID = "ozon"
)

// String returns the marketplace ID as a string.
func (id ID) String() string {
	return string(id)
}

// Limits are the per-request item caps of an account's endpoints.
type Limits struct {
	Stocks   int `json:"stocks" yaml:"stocks"`
	Prices   int `json:"prices" yaml:"prices"`
	PageSize int `json:"page_size" yaml:"page_size"`
}

// Page is one response of a paginated offer listing.
//
// Cursor-paginated listings leave Total at 0 and signal exhaustion with an
// empty Next. Count-paginated listings set Total to the number of offers on
// the account and still return the cursor for the following call in Next.
type Page struct {
	IDs   []string
	Next  string
	Total int
}

// Marketplace is one marketplace account.
type Marketplace interface {
	// ID returns the marketplace platform.
	ID() ID

	// Account names the account (campaign name or client ID).
	Account() string

	// Warehouse returns the warehouse stock updates are bound to, if any.
	Warehouse() string

	// Limits returns the endpoint item caps.
	Limits() Limits

	// ListOffers returns the page of offer identifiers starting at cursor.
	// The first call passes an empty cursor.
	ListOffers(ctx context.Context, cursor string) (*Page, error)

	// SubmitStocks sends one batch of stock updates. The batch never
	// exceeds Limits().Stocks.
	SubmitStocks(ctx context.Context, updates []inventory.StockUpdate) error

	// SubmitPrices sends one batch of price updates. The batch never
	// exceeds Limits().Prices.
	SubmitPrices(ctx context.Context, updates []inventory.PriceUpdate) error
}
