// Package yandex adapts the Yandex.Market Partner API to marketplace.Marketplace.
// Every configured campaign is one account; campaigns share a transport
// client and therefore its rate limiter.
package yandex

import (
	"context"
	"net/http"
	"strconv"

	"github.com/agentstation/stocksync/internal/transport"
	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/marketplace"
)

// updatedAtLayout is UTC at second precision with a literal Z.
const updatedAtLayout = "2006-01-02T15:04:05Z"

func init() {
	marketplace.Register(marketplace.Yandex, Accounts)
}

// Campaign is one Yandex.Market campaign.
type Campaign struct {
	client    *transport.Client
	name      string
	id        string
	warehouse string
	limits    marketplace.Limits
}

var _ marketplace.Marketplace = (*Campaign)(nil)

// Accounts builds one Campaign per configured campaign. It returns nothing
// when Yandex is not configured.
func Accounts(cfg *config.Config) ([]marketplace.Marketplace, error) {
	if cfg == nil || cfg.Yandex == nil {
		return nil, nil
	}
	y := cfg.Yandex
	client := NewClient(y)

	accounts := make([]marketplace.Marketplace, 0, len(y.Campaigns))
	for _, c := range y.Campaigns {
		accounts = append(accounts, NewCampaign(client, c, y.Limits))
	}
	return accounts, nil
}

// NewClient creates the transport client for the Partner API.
func NewClient(y *config.YandexConfig, opts ...transport.Option) *transport.Client {
	baseURL := y.BaseURL
	if baseURL == "" {
		baseURL = constants.YandexBaseURL
	}
	opts = append([]transport.Option{
		transport.WithTimeout(y.Timeout),
		transport.WithRateLimit(y.RateLimit),
	}, opts...)
	return transport.New(marketplace.Yandex.String(), baseURL, &transport.BearerAuth{Token: y.Token}, opts...)
}

// NewCampaign creates a campaign account on client.
func NewCampaign(client *transport.Client, c config.Campaign, limits config.Limits) *Campaign {
	name := c.Name
	if name == "" {
		name = c.ID
	}
	return &Campaign{
		client:    client,
		name:      name,
		id:        c.ID,
		warehouse: c.WarehouseID,
		limits: marketplace.Limits{
			Stocks:   orDefault(limits.Stocks, constants.YandexStockBatchSize),
			Prices:   orDefault(limits.Prices, constants.YandexPriceBatchSize),
			PageSize: orDefault(limits.PageSize, constants.YandexPageSize),
		},
	}
}

// ID returns marketplace.Yandex.
func (c *Campaign) ID() marketplace.ID { return marketplace.Yandex }

// Account returns the campaign name.
func (c *Campaign) Account() string { return c.name }

// Warehouse returns the campaign's warehouse.
func (c *Campaign) Warehouse() string { return c.warehouse }

// Limits returns the endpoint caps.
func (c *Campaign) Limits() marketplace.Limits { return c.limits }

// ListOffers returns one page of offer mapping entries. The listing is
// cursor-paginated by nextPageToken.
func (c *Campaign) ListOffers(ctx context.Context, cursor string) (*marketplace.Page, error) {
	path := transport.WithQuery(
		transport.Path("campaigns", c.id, "offer-mapping-entries"),
		map[string]string{
			"page_token": cursor,
			"limit":      strconv.Itoa(c.limits.PageSize),
		},
	)

	var resp listResponse
	if err := c.client.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	page := &marketplace.Page{IDs: make([]string, 0, len(resp.Result.OfferMappingEntries))}
	for _, e := range resp.Result.OfferMappingEntries {
		page.IDs = append(page.IDs, e.Offer.ShopSKU)
	}
	if resp.Result.Paging != nil {
		page.Next = resp.Result.Paging.NextPageToken
	}
	return page, nil
}

// SubmitStocks updates stocks of one batch of SKUs.
func (c *Campaign) SubmitStocks(ctx context.Context, updates []inventory.StockUpdate) error {
	body := stocksRequest{SKUs: make([]skuStock, len(updates))}
	for i, u := range updates {
		body.SKUs[i] = skuStock{
			SKU:         u.OfferID,
			WarehouseID: u.WarehouseID,
			Items: []stockItem{{
				Count:     u.Count,
				Type:      constants.YandexStockType,
				UpdatedAt: u.UpdatedAt.UTC().Format(updatedAtLayout),
			}},
		}
	}
	return c.client.Do(ctx, http.MethodPut, transport.Path("campaigns", c.id, "offers", "stocks"), body, nil)
}

// SubmitPrices updates prices of one batch of offers.
func (c *Campaign) SubmitPrices(ctx context.Context, updates []inventory.PriceUpdate) error {
	body := pricesRequest{Offers: make([]offerPrice, 0, len(updates))}
	for _, u := range updates {
		value, err := inventory.ParsePrice(u.Price)
		if err != nil {
			return err
		}
		body.Offers = append(body.Offers, offerPrice{
			ID:    u.OfferID,
			Price: price{Value: value.IntPart(), CurrencyID: constants.YandexCurrency},
		})
	}
	return c.client.Do(ctx, http.MethodPost, transport.Path("campaigns", c.id, "offer-prices", "updates"), body, nil)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
