package marketplace_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/marketplace"
	"github.com/agentstation/stocksync/pkg/marketplace/marketplacetest"
)

func TestFetchOffersCursorPagination(t *testing.T) {
	fake := marketplacetest.New(marketplace.Yandex, "fbs", 2, "A", "B", "C", "D", "E")

	offers, err := marketplace.FetchOffers(context.Background(), fake)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, offers.IDs())
	assert.Equal(t, []string{"", "1", "2"}, fake.Cursors())
}

func TestFetchOffersSinglePage(t *testing.T) {
	fake := marketplacetest.New(marketplace.Yandex, "fbs", 10, "A")
	offers, err := marketplace.FetchOffers(context.Background(), fake)
	require.NoError(t, err)
	assert.Equal(t, 1, offers.Len())
	assert.Equal(t, 1, fake.ListedPages)
}

func TestFetchOffersEmptyAccount(t *testing.T) {
	fake := marketplacetest.New(marketplace.Yandex, "fbs", 10)
	offers, err := marketplace.FetchOffers(context.Background(), fake)
	require.NoError(t, err)
	assert.Zero(t, offers.Len())
}

func TestFetchOffersCountPagination(t *testing.T) {
	fake := &marketplacetest.Fake{
		MarketID:    marketplace.Ozon,
		AccountName: "client",
		Pages: []marketplace.Page{
			{IDs: []string{"A", "B"}, Next: "last-B", Total: 5},
			{IDs: []string{"C", "D"}, Next: "last-D", Total: 5},
			{IDs: []string{"E"}, Next: "last-E", Total: 5},
		},
	}

	offers, err := marketplace.FetchOffers(context.Background(), fake)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, offers.IDs())
	assert.Equal(t, []string{"", "last-B", "last-D"}, fake.Cursors())
}

func TestFetchOffersCountPaginationStalled(t *testing.T) {
	fake := &marketplacetest.Fake{
		MarketID: marketplace.Ozon,
		Pages: []marketplace.Page{
			{IDs: []string{"A", "B"}, Next: "last-B", Total: 5},
			{IDs: nil, Next: "last-B", Total: 5},
			{IDs: []string{"C"}, Next: "never", Total: 5},
		},
	}

	offers, err := marketplace.FetchOffers(context.Background(), fake)
	require.Error(t, err)
	assert.Nil(t, offers)
	assert.True(t, pkgerrors.IsProtocol(err))
	assert.Contains(t, err.Error(), "pagination stalled")
	assert.Equal(t, 2, fake.ListedPages)
}

func TestFetchOffersCursorPaginationStalled(t *testing.T) {
	fake := &marketplacetest.Fake{
		MarketID: marketplace.Yandex,
		Pages: []marketplace.Page{
			{IDs: []string{"A"}, Next: "t1"},
			{IDs: nil, Next: "t2"},
		},
	}

	_, err := marketplace.FetchOffers(context.Background(), fake)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsProtocol(err))
}

func TestFetchOffersCountWithoutCursor(t *testing.T) {
	fake := &marketplacetest.Fake{
		MarketID: marketplace.Ozon,
		Pages: []marketplace.Page{
			{IDs: []string{"A"}, Total: 3},
		},
	}

	_, err := marketplace.FetchOffers(context.Background(), fake)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsProtocol(err))
}

func TestFetchOffersAbortsOnPageError(t *testing.T) {
	pageErr := pkgerrors.NewAPIError("yandex", 500, "internal")
	fake := marketplacetest.New(marketplace.Yandex, "fbs", 1, "A", "B", "C")
	fake.ListErr = pageErr
	fake.ListErrAt = 2

	offers, err := marketplace.FetchOffers(context.Background(), fake)
	assert.Nil(t, offers, "partial results must be discarded")
	assert.ErrorIs(t, err, pageErr)
}

func TestFetchOffersDeduplicates(t *testing.T) {
	fake := &marketplacetest.Fake{
		MarketID: marketplace.Ozon,
		Pages: []marketplace.Page{
			{IDs: []string{"A", "B"}, Next: "x", Total: 4},
			{IDs: []string{"B", "C"}, Next: "y", Total: 4},
		},
	}

	offers, err := marketplace.FetchOffers(context.Background(), fake)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, offers.IDs())
}

func TestFetchOffersCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := marketplacetest.New(marketplace.Yandex, "fbs", 1, "A", "B")
	_, err := marketplace.FetchOffers(ctx, fake)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, fake.ListedPages)
}
