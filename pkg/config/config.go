// Package config holds the explicit configuration of a sync run. A Config is
// built once at startup from a YAML file and the environment, validated, and
// then passed to the orchestrator and the marketplace adapters.
package config

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/stocksync/internal/utils/ptr"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
)

// Config is the complete stocksync configuration.
type Config struct {
	Feed   FeedConfig    `yaml:"feed" json:"feed"`
	Yandex *YandexConfig `yaml:"yandex,omitempty" json:"yandex,omitempty"`
	Ozon   *OzonConfig   `yaml:"ozon,omitempty" json:"ozon,omitempty"`
	Sync   SyncConfig    `yaml:"sync" json:"sync"`
}

// FeedConfig describes where the supplier remnants feed lives and how to read it.
type FeedConfig struct {
	URL            string        `yaml:"url" json:"url"`
	Entry          string        `yaml:"entry,omitempty" json:"entry,omitempty"`   // spreadsheet inside the archive
	Format         string        `yaml:"format,omitempty" json:"format,omitempty"` // xls or csv
	Encoding       string        `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	Sheet          int           `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	HeaderRow      int           `yaml:"header_row" json:"header_row"`
	CodeColumn     string        `yaml:"code_column,omitempty" json:"code_column,omitempty"`
	QuantityColumn string        `yaml:"quantity_column,omitempty" json:"quantity_column,omitempty"`
	PriceColumn    string        `yaml:"price_column,omitempty" json:"price_column,omitempty"`
	CacheTTL       time.Duration `yaml:"cache_ttl,omitempty" json:"cache_ttl,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Limits are per-request item caps of a marketplace's endpoints.
type Limits struct {
	Stocks   int `yaml:"stocks,omitempty" json:"stocks,omitempty"`
	Prices   int `yaml:"prices,omitempty" json:"prices,omitempty"`
	PageSize int `yaml:"page_size,omitempty" json:"page_size,omitempty"`
}

// Campaign is one Yandex.Market campaign (fulfillment channel) with its warehouse.
type Campaign struct {
	Name        string `yaml:"name" json:"name"`
	ID          string `yaml:"id" json:"id"`
	WarehouseID string `yaml:"warehouse_id" json:"warehouse_id"`
}

// YandexConfig configures the Yandex.Market Partner API.
type YandexConfig struct {
	Token     string        `yaml:"token" json:"-"`
	BaseURL   string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Campaigns []Campaign    `yaml:"campaigns" json:"campaigns"`
	Limits    Limits        `yaml:"limits,omitempty" json:"limits,omitempty"`
	RateLimit float64       `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"` // requests per second, 0 disables
	Timeout   time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// OzonConfig configures the Ozon Seller API.
type OzonConfig struct {
	ClientID    string        `yaml:"client_id" json:"client_id"`
	Token       string        `yaml:"token" json:"-"`
	BaseURL     string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	WarehouseID string        `yaml:"warehouse_id,omitempty" json:"warehouse_id,omitempty"`
	Limits      Limits        `yaml:"limits,omitempty" json:"limits,omitempty"`
	RateLimit   float64       `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// SyncConfig controls orchestration behavior.
type SyncConfig struct {
	DryRun         bool          `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
	FailFast       bool          `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Interval       time.Duration `yaml:"interval,omitempty" json:"interval,omitempty"`
	StrictQuantity *bool         `yaml:"strict_quantity,omitempty" json:"strict_quantity,omitempty"`
	StrictPrice    *bool         `yaml:"strict_price,omitempty" json:"strict_price,omitempty"`
}

// QuantityStrict reports whether an unparsable quantity fails reconciliation.
// Defaults to true.
func (s SyncConfig) QuantityStrict() bool {
	return ptr.Deref(s.StrictQuantity, true)
}

// PriceStrict reports whether an unusable price fails reconciliation.
// Defaults to false.
func (s SyncConfig) PriceStrict() bool {
	return ptr.Deref(s.StrictPrice, false)
}

// Default returns a configuration with only the feed settings filled in.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads a YAML configuration file. Defaults are applied but the result
// is not validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.NewConfigError("file", "invalid YAML", err)
	}
	c.ApplyDefaults()
	return c, nil
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	f := &c.Feed
	f.URL = or(f.URL, constants.DefaultFeedURL)
	f.Entry = or(f.Entry, constants.DefaultFeedEntry)
	f.Format = or(f.Format, "xls")
	f.CodeColumn = or(f.CodeColumn, constants.DefaultCodeColumn)
	f.QuantityColumn = or(f.QuantityColumn, constants.DefaultQuantityColumn)
	f.PriceColumn = or(f.PriceColumn, constants.DefaultPriceColumn)
	if f.HeaderRow == 0 {
		f.HeaderRow = constants.DefaultHeaderRow
	}
	if f.Timeout == 0 {
		f.Timeout = constants.FeedDownloadTimeout
	}
	if f.Format == "csv" {
		f.Encoding = or(f.Encoding, "windows-1251")
	}

	if y := c.Yandex; y != nil {
		y.BaseURL = or(y.BaseURL, constants.YandexBaseURL)
		y.Limits = y.Limits.withDefaults(Limits{
			Stocks:   constants.YandexStockBatchSize,
			Prices:   constants.YandexPriceBatchSize,
			PageSize: constants.YandexPageSize,
		})
		if y.Timeout == 0 {
			y.Timeout = constants.DefaultHTTPTimeout
		}
	}

	if o := c.Ozon; o != nil {
		o.BaseURL = or(o.BaseURL, constants.OzonBaseURL)
		o.Limits = o.Limits.withDefaults(Limits{
			Stocks:   constants.OzonStockBatchSize,
			Prices:   constants.OzonPriceBatchSize,
			PageSize: constants.OzonPageSize,
		})
		if o.Timeout == 0 {
			o.Timeout = constants.DefaultHTTPTimeout
		}
	}

	if c.Sync.Timeout == 0 {
		c.Sync.Timeout = constants.SyncTimeout
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = constants.DefaultSyncInterval
	}
}

func (l Limits) withDefaults(d Limits) Limits {
	if l.Stocks == 0 {
		l.Stocks = d.Stocks
	}
	if l.Prices == 0 {
		l.Prices = d.Prices
	}
	if l.PageSize == 0 {
		l.PageSize = d.PageSize
	}
	return l
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
