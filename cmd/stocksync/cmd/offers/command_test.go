package offers

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/cmd/application"
	_ "github.com/agentstation/stocksync/internal/marketplaces"
	"github.com/agentstation/stocksync/internal/output"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/marketplace"
	"github.com/agentstation/stocksync/pkg/marketplace/marketplacetest"
)

func TestExecute(t *testing.T) {
	var buf bytes.Buffer
	fbs := marketplacetest.New(marketplace.Yandex, "fbs", 2, "1", "2", "3")
	app := &application.Mock{
		MarketplacesFunc: func(ids ...marketplace.ID) ([]marketplace.Marketplace, error) {
			assert.Equal(t, []marketplace.ID{marketplace.Yandex}, ids)
			return []marketplace.Marketplace{fbs}, nil
		},
		OutputFormatFunc: func() string { return "json" },
		Writer:           &buf,
	}

	require.NoError(t, Execute(context.Background(), app, []string{"yandex"}))

	var lists []output.OfferList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &lists))
	require.Len(t, lists, 1)
	assert.Equal(t, []string{"1", "2", "3"}, lists[0].Offers)
	assert.Equal(t, []string{"", "1"}, fbs.Cursors())
}

func TestExecuteListError(t *testing.T) {
	broken := marketplacetest.New(marketplace.Ozon, "seller", 10, "1")
	broken.ListErrAt = 1
	broken.ListErr = errors.NewAPIError("ozon", 403, "forbidden")
	app := &application.Mock{
		MarketplacesFunc: func(...marketplace.ID) ([]marketplace.Marketplace, error) {
			return []marketplace.Marketplace{broken}, nil
		},
		Writer: &bytes.Buffer{},
	}

	err := Execute(context.Background(), app, nil)
	assert.True(t, errors.IsProtocol(err))
}

func TestExecuteUnknownMarketplace(t *testing.T) {
	err := Execute(context.Background(), &application.Mock{}, []string{"amazon"})
	assert.True(t, errors.IsValidationError(err))
}
