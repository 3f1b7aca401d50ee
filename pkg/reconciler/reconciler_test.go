package reconciler_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/reconciler"
)

var fixedNow = time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

func newReconciler(t *testing.T, opts ...reconciler.Option) *reconciler.Reconciler {
	t.Helper()
	opts = append([]reconciler.Option{reconciler.WithClock(func() time.Time { return fixedNow })}, opts...)
	r, err := reconciler.New(opts...)
	require.NoError(t, err)
	return r
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func stockIDs(u []inventory.StockUpdate) []string {
	return ids(u, func(s inventory.StockUpdate) string { return s.OfferID })
}

func priceIDs(u []inventory.PriceUpdate) []string {
	return ids(u, func(p inventory.PriceUpdate) string { return p.OfferID })
}

func TestReconcileScenario(t *testing.T) {
	r := newReconciler(t, reconciler.WithWarehouse("WH-1"))
	records := []inventory.Record{{Code: "123", Quantity: ">10", Price: "5'990.00 руб."}}
	offers := inventory.NewOfferSet("123", "456")

	result, err := r.Reconcile(records, offers)
	require.NoError(t, err)

	assert.Equal(t, []inventory.StockUpdate{
		{OfferID: "123", WarehouseID: "WH-1", Count: 100, UpdatedAt: fixedNow},
		{OfferID: "456", WarehouseID: "WH-1", Count: 0, UpdatedAt: fixedNow},
	}, result.Stocks)
	assert.Equal(t, []inventory.PriceUpdate{{OfferID: "123", Price: "5990"}}, result.Prices)
	assert.Equal(t, int64(5990), result.Prices[0].Value())
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.ZeroFilled)
	assert.Len(t, result.InStock(), 1)
}

func TestReconcileEmptyFeed(t *testing.T) {
	r := newReconciler(t)
	result, err := r.Reconcile(nil, inventory.NewOfferSet("A", "B"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, stockIDs(result.Stocks))
	for _, s := range result.Stocks {
		assert.Zero(t, s.Count)
	}
	assert.Empty(t, result.Prices)
	assert.Empty(t, result.InStock())
}

func TestStocksDoesNotMutateOffers(t *testing.T) {
	r := newReconciler(t)
	offers := inventory.NewOfferSet("A", "B", "C")
	records := []inventory.Record{{Code: "B", Quantity: "5"}, {Code: "A", Quantity: "2"}}

	first, err := r.Stocks(records, offers)
	require.NoError(t, err)
	second, err := r.Stocks(records, offers)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, offers.IDs())
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"B", "A", "C"}, stockIDs(first), "matched in feed order, then zero-fill in offer order")
}

func TestStocksFirstOccurrenceWins(t *testing.T) {
	r := newReconciler(t)
	records := []inventory.Record{
		{Code: "A", Quantity: "3"},
		{Code: "A", Quantity: ">10"},
	}

	stocks, err := r.Stocks(records, inventory.NewOfferSet("A"))
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, 3, stocks[0].Count)
}

func TestStocksIgnoresUnknownCodes(t *testing.T) {
	r := newReconciler(t)
	records := []inventory.Record{{Code: "X", Quantity: "not a number"}, {Code: "A", Quantity: "1"}}

	stocks, err := r.Stocks(records, inventory.NewOfferSet("A"))
	require.NoError(t, err, "records outside the offer set are never parsed")
	assert.Equal(t, []inventory.StockUpdate{{OfferID: "A", Count: 0, UpdatedAt: fixedNow}}, stocks)
}

func TestStocksStrictQuantity(t *testing.T) {
	r := newReconciler(t)
	records := []inventory.Record{{Code: "A", Quantity: "abc"}}

	stocks, err := r.Stocks(records, inventory.NewOfferSet("A", "B"))
	require.Error(t, err)
	assert.Nil(t, stocks)
	assert.True(t, errors.IsParse(err))

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "A", parseErr.Field)
	assert.Equal(t, "quantity", parseErr.Format)
}

func TestStocksLenientQuantity(t *testing.T) {
	r := newReconciler(t, reconciler.WithQuantityStrictness(reconciler.Lenient))
	records := []inventory.Record{
		{Code: "A", Quantity: "abc", Price: "10"},
		{Code: "B", Quantity: "4", Price: "20"},
	}

	result, err := r.Reconcile(records, inventory.NewOfferSet("A", "B"))
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, stockIDs(result.Stocks))
	assert.Zero(t, result.Stocks[1].Count, "a skipped record is zero-filled")
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.ZeroFilled)
	assert.Equal(t, []string{"A", "B"}, priceIDs(result.Prices), "prices do not depend on quantity parsing")
}

func TestPricesLenientSkipsUnusable(t *testing.T) {
	r := newReconciler(t)
	records := []inventory.Record{
		{Code: "A", Price: "Нет цены"},
		{Code: "B", Price: "1 299.99 руб."},
		{Code: "X", Price: "100"},
	}

	prices, err := r.Prices(records, inventory.NewOfferSet("A", "B", "C"))
	require.NoError(t, err)
	assert.Equal(t, []inventory.PriceUpdate{{OfferID: "B", Price: "1299"}}, prices)
}

func TestPricesStrict(t *testing.T) {
	r := newReconciler(t, reconciler.WithPriceStrictness(reconciler.Strict))
	records := []inventory.Record{{Code: "A", Price: "Нет цены"}}

	_, err := r.Prices(records, inventory.NewOfferSet("A"))
	require.Error(t, err)
	assert.True(t, errors.IsParse(err))

	_, err = r.Reconcile(records, inventory.NewOfferSet("A"))
	assert.True(t, errors.IsParse(err))
}

func TestPricesFirstOccurrenceWins(t *testing.T) {
	r := newReconciler(t)
	records := []inventory.Record{{Code: "A", Price: "10"}, {Code: "A", Price: "20"}}

	prices, err := r.Prices(records, inventory.NewOfferSet("A"))
	require.NoError(t, err)
	assert.Equal(t, []inventory.PriceUpdate{{OfferID: "A", Price: "10"}}, prices)
}

func TestUpdatedAtIsUTC(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	r, err := reconciler.New(reconciler.WithClock(func() time.Time { return fixedNow.In(moscow) }))
	require.NoError(t, err)

	stocks, err := r.Stocks(nil, inventory.NewOfferSet("A"))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, stocks[0].UpdatedAt.Location())
	assert.True(t, stocks[0].UpdatedAt.Equal(fixedNow))
}

func TestOptionsValidation(t *testing.T) {
	_, err := reconciler.New(reconciler.WithClock(nil))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(reconciler.WithQuantityStrictness(reconciler.Strictness(7)))
	assert.True(t, errors.IsValidationError(err))

	assert.Equal(t, reconciler.Strict, reconciler.StrictnessFor(true))
	assert.Equal(t, reconciler.Lenient, reconciler.StrictnessFor(false))
	assert.Equal(t, "lenient", reconciler.Lenient.String())
}

// TestReconcileProperties checks coverage, zero-fill and price subset
// over randomized feeds and offer sets.
func TestReconcileProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	quantities := []string{">10", "1", "0", "7", "25"}
	prices := []string{"5'990.00 руб.", "Нет цены", "100", "1 299.99 руб."}

	for n := range 200 {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			universe := 30
			offerIDs := make([]string, 0, universe)
			for i := range universe {
				if rng.IntN(2) == 0 {
					offerIDs = append(offerIDs, fmt.Sprintf("SKU-%d", i))
				}
			}
			records := make([]inventory.Record, rng.IntN(40))
			for i := range records {
				records[i] = inventory.Record{
					Code:     fmt.Sprintf("SKU-%d", rng.IntN(universe)),
					Quantity: quantities[rng.IntN(len(quantities))],
					Price:    prices[rng.IntN(len(prices))],
				}
			}
			offers := inventory.NewOfferSet(offerIDs...)

			result, err := newReconciler(t).Reconcile(records, offers)
			require.NoError(t, err)

			// stock coverage: exactly the offer set, no duplicates
			got := stockIDs(result.Stocks)
			assert.ElementsMatch(t, offers.IDs(), got)
			assert.Equal(t, offers.Len(), inventory.NewOfferSet(got...).Len())

			// zero-fill: offers absent from the feed have count 0
			feed := inventory.NewOfferSet(inventory.Codes(records)...)
			for _, s := range result.Stocks {
				if !feed.Has(s.OfferID) {
					assert.Zero(t, s.Count, s.OfferID)
				}
			}
			assert.Equal(t, offers.Len(), result.Matched+result.ZeroFilled)

			// price subset: feed ∩ offers
			for _, p := range result.Prices {
				assert.True(t, feed.Has(p.OfferID) && offers.Has(p.OfferID), p.OfferID)
			}
			assert.Equal(t, len(result.Prices), inventory.NewOfferSet(priceIDs(result.Prices)...).Len())
		})
	}
}
