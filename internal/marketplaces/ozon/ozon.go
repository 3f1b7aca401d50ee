// Package ozon adapts the Ozon Seller API to marketplace.Marketplace.
// A seller client is a single account.
package ozon

import (
	"context"
	"net/http"

	"github.com/agentstation/stocksync/internal/transport"
	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// Seller API endpoints.
const (
	productListPath  = "/v2/product/list"
	importStocksPath = "/v1/product/import/stocks"
	importPricesPath = "/v1/product/import/prices"
)

func init() {
	marketplace.Register(marketplace.Ozon, Accounts)
}

// Seller is one Ozon seller account.
type Seller struct {
	client    *transport.Client
	clientID  string
	warehouse string
	limits    marketplace.Limits
}

var _ marketplace.Marketplace = (*Seller)(nil)

// Accounts builds the seller account. It returns nothing when Ozon is not
// configured.
func Accounts(cfg *config.Config) ([]marketplace.Marketplace, error) {
	if cfg == nil || cfg.Ozon == nil {
		return nil, nil
	}
	return []marketplace.Marketplace{New(cfg.Ozon)}, nil
}

// New creates a seller account from configuration.
func New(o *config.OzonConfig, opts ...transport.Option) *Seller {
	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = constants.OzonBaseURL
	}
	opts = append([]transport.Option{
		transport.WithTimeout(o.Timeout),
		transport.WithRateLimit(o.RateLimit),
	}, opts...)

	return &Seller{
		client:    transport.New(marketplace.Ozon.String(), baseURL, transport.SellerAuth(o.ClientID, o.Token), opts...),
		clientID:  o.ClientID,
		warehouse: o.WarehouseID,
		limits: marketplace.Limits{
			Stocks:   orDefault(o.Limits.Stocks, constants.OzonStockBatchSize),
			Prices:   orDefault(o.Limits.Prices, constants.OzonPriceBatchSize),
			PageSize: orDefault(o.Limits.PageSize, constants.OzonPageSize),
		},
	}
}

// ID returns marketplace.Ozon.
func (s *Seller) ID() marketplace.ID { return marketplace.Ozon }

// Account returns the seller client ID.
func (s *Seller) Account() string { return s.clientID }

// Warehouse returns the configured warehouse, which may be empty.
func (s *Seller) Warehouse() string { return s.warehouse }

// Limits returns the endpoint caps.
func (s *Seller) Limits() marketplace.Limits { return s.limits }

// ListOffers returns one page of products. The listing is count-paginated:
// every page reports the account total and the last_id to continue from.
func (s *Seller) ListOffers(ctx context.Context, cursor string) (*marketplace.Page, error) {
	req := listRequest{
		Filter: listFilter{Visibility: constants.OzonVisibilityAll},
		LastID: cursor,
		Limit:  s.limits.PageSize,
	}

	var resp listResponse
	if err := s.client.Do(ctx, http.MethodPost, productListPath, req, &resp); err != nil {
		return nil, err
	}

	page := &marketplace.Page{
		IDs:   make([]string, 0, len(resp.Result.Items)),
		Next:  resp.Result.LastID,
		Total: resp.Result.Total,
	}
	for _, item := range resp.Result.Items {
		page.IDs = append(page.IDs, item.OfferID)
	}
	if page.Total == 0 {
		// empty account: nothing to continue from
		page.Next = ""
	}
	return page, nil
}

// SubmitStocks imports one batch of stocks.
func (s *Seller) SubmitStocks(ctx context.Context, updates []inventory.StockUpdate) error {
	body := stocksRequest{Stocks: make([]stock, len(updates))}
	for i, u := range updates {
		body.Stocks[i] = stock{OfferID: u.OfferID, Stock: u.Count, WarehouseID: u.WarehouseID}
	}
	return s.client.Do(ctx, http.MethodPost, importStocksPath, body, nil)
}

// SubmitPrices imports one batch of prices.
func (s *Seller) SubmitPrices(ctx context.Context, updates []inventory.PriceUpdate) error {
	body := pricesRequest{Prices: make([]price, len(updates))}
	for i, u := range updates {
		body.Prices[i] = price{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      constants.OzonCurrency,
			OfferID:           u.OfferID,
			OldPrice:          "0",
			Price:             u.Price,
		}
	}
	return s.client.Do(ctx, http.MethodPost, importPricesPath, body, nil)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
