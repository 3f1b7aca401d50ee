// Package inventory defines the values that flow through a sync run: supplier
// feed records, the offer identifiers known to a marketplace account, and the
// stock and price updates computed from them.
package inventory

import (
	"strconv"
	"time"
)

// Record is one row of the supplier remnants feed.
type Record struct {
	Code     string `json:"code" yaml:"code"`         // marketplace offer key
	Quantity string `json:"quantity" yaml:"quantity"` // raw quantity code (">10", "1", or a count)
	Price    string `json:"price" yaml:"price"`       // raw price text, possibly unusable
}

// StockUpdate sets the available count of one offer on one warehouse.
type StockUpdate struct {
	OfferID     string    `json:"offer_id" yaml:"offer_id"`
	WarehouseID string    `json:"warehouse_id,omitempty" yaml:"warehouse_id,omitempty"`
	Count       int       `json:"count" yaml:"count"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// InStock reports whether the update advertises a non-zero count.
func (u StockUpdate) InStock() bool {
	return u.Count != 0
}

// PriceUpdate sets the price of one offer. Price holds the normalized integer
// digits produced by NormalizePrice.
type PriceUpdate struct {
	OfferID string `json:"offer_id" yaml:"offer_id"`
	Price   string `json:"price" yaml:"price"`
}

// Value returns the price as an integer. It returns 0 when Price is not a
// valid integer, which NormalizePrice output never is.
func (u PriceUpdate) Value() int64 {
	v, err := strconv.ParseInt(u.Price, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Codes returns the offer codes of records in feed order.
func Codes(records []Record) []string {
	codes := make([]string, len(records))
	for i, r := range records {
		codes[i] = r.Code
	}
	return codes
}
