// Package constants provides shared constants used throughout the stocksync codebase.
// This includes marketplace batch limits, timeouts, file permissions and the
// supplier feed defaults that must stay consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to marketplace APIs
	DefaultHTTPTimeout = 30 * time.Second

	// FeedDownloadTimeout is the timeout for downloading the supplier archive
	FeedDownloadTimeout = 2 * time.Minute

	// SyncTimeout is the timeout for a single sync run across all accounts
	SyncTimeout = 30 * time.Minute

	// DefaultSyncInterval is the default interval between runs in --every mode
	DefaultSyncInterval = 1 * time.Hour

	// MinSyncInterval is the smallest accepted interval between runs
	MinSyncInterval = 1 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for files holding marketplace tokens (rw-------)
	SecureFilePermissions = 0600
)

// Yandex.Market endpoint limits.
const (
	// YandexStockBatchSize is the maximum number of SKUs per stocks update request
	YandexStockBatchSize = 2000

	// YandexPriceBatchSize is the maximum number of offers per price update request
	YandexPriceBatchSize = 500

	// YandexPageSize is the page size used when listing offer mapping entries
	YandexPageSize = 200
)

// Ozon Seller endpoint limits.
const (
	// OzonStockBatchSize is the maximum number of items per stocks import request
	OzonStockBatchSize = 100

	// OzonPriceBatchSize is the maximum number of items per prices import request
	OzonPriceBatchSize = 1000

	// OzonPageSize is the page size used when listing products
	OzonPageSize = 1000
)

// Marketplace API defaults
const (
	// YandexBaseURL is the Yandex.Market Partner API root
	YandexBaseURL = "https://api.partner.market.yandex.ru"

	// OzonBaseURL is the Ozon Seller API root
	OzonBaseURL = "https://api-seller.ozon.ru"

	// YandexStockType is the stock type reported for every Yandex stock item
	YandexStockType = "FIT"

	// YandexCurrency is the currency of Yandex price updates
	YandexCurrency = "RUR"

	// OzonCurrency is the currency of Ozon price updates
	OzonCurrency = "RUB"

	// OzonVisibilityAll lists every product regardless of its visibility state
	OzonVisibilityAll = "ALL"
)

// Supplier feed defaults
const (
	// DefaultFeedURL is the supplier's remnants archive
	DefaultFeedURL = "https://timeworld.ru/upload/files/ostatki.zip"

	// DefaultFeedEntry is the spreadsheet file inside the archive
	DefaultFeedEntry = "ostatki.xls"

	// DefaultHeaderRow is the zero-based row index of the column headers
	DefaultHeaderRow = 17

	// DefaultCodeColumn is the header of the offer code column
	DefaultCodeColumn = "Код"

	// DefaultQuantityColumn is the header of the quantity code column
	DefaultQuantityColumn = "Количество"

	// DefaultPriceColumn is the header of the price column
	DefaultPriceColumn = "Цена"

	// MaxFeedSize caps the downloaded archive (64 MB)
	MaxFeedSize = 64 << 20
)

// Quantity codes used by the supplier in place of exact counts
const (
	// QuantityManyCode marks "more than ten in stock"
	QuantityManyCode = ">10"

	// QuantityManyValue is the stock reported for QuantityManyCode
	QuantityManyValue = 100

	// QuantitySingleCode marks a lone unit, which is treated as unavailable
	QuantitySingleCode = "1"
)

// Cache constants
const (
	// FeedCacheTTL is the time-to-live of a parsed feed when caching is
	// requested without a duration. Caching is off unless feed.cache_ttl is set.
	FeedCacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
