// Package reconciler computes the stock and price updates of one marketplace
// account from the supplier feed and the account's offer identifiers.
//
// Stock reconciliation runs in two phases. The feed is scanned first and
// every record whose code is a known offer produces an update with its
// resolved quantity. Then every offer that was not matched is reported with a
// count of zero, in offer order. The offer set is only read, so the same set
// can serve the stock and price passes, or several warehouses.
package reconciler

import (
	"time"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/inventory"
)

// Reconciler turns feed records into marketplace updates.
type Reconciler struct {
	opts *options
}

// New creates a new Reconciler with options.
func New(opts ...Option) (*Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{opts: options}, nil
}

// stockPass is the outcome of a stock scan.
type stockPass struct {
	updates    []inventory.StockUpdate
	matched    int
	zeroFilled int
	skipped    int
}

// Stocks returns exactly one stock update per identifier in offers.
// Matched offers come first in feed order, zero-filled ones follow in offer
// order. A record whose code repeats an already matched one is ignored.
func (r *Reconciler) Stocks(records []inventory.Record, offers *inventory.OfferSet) ([]inventory.StockUpdate, error) {
	pass, err := r.stocks(records, offers)
	if err != nil {
		return nil, err
	}
	return pass.updates, nil
}

func (r *Reconciler) stocks(records []inventory.Record, offers *inventory.OfferSet) (*stockPass, error) {
	now := r.opts.clock().UTC()
	pass := &stockPass{updates: make([]inventory.StockUpdate, 0, offers.Len())}
	matched := make(map[string]struct{}, offers.Len())

	for _, rec := range records {
		if !offers.Has(rec.Code) {
			continue
		}
		if _, done := matched[rec.Code]; done {
			continue
		}

		count, err := inventory.ResolveQuantity(rec.Quantity)
		if err != nil {
			if r.opts.quantity == Strict {
				return nil, withField(err, rec.Code)
			}
			pass.skipped++
			continue
		}

		matched[rec.Code] = struct{}{}
		pass.updates = append(pass.updates, r.stock(rec.Code, count, now))
	}
	pass.matched = len(matched)

	for _, id := range offers.IDs() {
		if _, ok := matched[id]; ok {
			continue
		}
		pass.updates = append(pass.updates, r.stock(id, 0, now))
		pass.zeroFilled++
	}

	return pass, nil
}

func (r *Reconciler) stock(id string, count int, now time.Time) inventory.StockUpdate {
	return inventory.StockUpdate{
		OfferID:     id,
		WarehouseID: r.opts.warehouse,
		Count:       count,
		UpdatedAt:   now,
	}
}

// Prices returns a price update for every record whose code is a known
// offer. Repeated feed codes collapse into one update, the first occurrence
// winning. Offers missing from the feed get no price.
func (r *Reconciler) Prices(records []inventory.Record, offers *inventory.OfferSet) ([]inventory.PriceUpdate, error) {
	updates, _, err := r.prices(records, offers)
	return updates, err
}

func (r *Reconciler) prices(records []inventory.Record, offers *inventory.OfferSet) ([]inventory.PriceUpdate, int, error) {
	updates := make([]inventory.PriceUpdate, 0, min(len(records), offers.Len()))
	seen := make(map[string]struct{}, offers.Len())
	skipped := 0

	for _, rec := range records {
		if !offers.Has(rec.Code) {
			continue
		}
		if _, done := seen[rec.Code]; done {
			continue
		}

		price := inventory.NormalizePrice(rec.Price)
		if price == "" {
			if r.opts.price == Strict {
				return nil, 0, withField(errors.NewParseError("price", rec.Price, "no digits in price", nil), rec.Code)
			}
			skipped++
			continue
		}

		seen[rec.Code] = struct{}{}
		updates = append(updates, inventory.PriceUpdate{OfferID: rec.Code, Price: price})
	}

	return updates, skipped, nil
}

// Reconcile runs the stock and price passes.
func (r *Reconciler) Reconcile(records []inventory.Record, offers *inventory.OfferSet) (*Result, error) {
	pass, err := r.stocks(records, offers)
	if err != nil {
		return nil, err
	}
	prices, skipped, err := r.prices(records, offers)
	if err != nil {
		return nil, err
	}

	return &Result{
		Stocks:     pass.updates,
		Prices:     prices,
		Matched:    pass.matched,
		ZeroFilled: pass.zeroFilled,
		Skipped:    pass.skipped + skipped,
	}, nil
}

// withField attaches the offer code to a parse error.
func withField(err error, code string) error {
	var parseErr *errors.ParseError
	if errors.As(err, &parseErr) {
		parseErr.Field = code
	}
	return err
}
