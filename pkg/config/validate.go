package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/agentstation/stocksync/pkg/constants"
	pkgerrors "github.com/agentstation/stocksync/pkg/errors"
)

// Validate checks the configuration once at startup. It returns every
// problem found, joined, each as a *errors.ValidationError.
func (c *Config) Validate() error {
	var errs []error
	add := func(field string, value any, msg string) {
		errs = append(errs, pkgerrors.NewValidationError(field, value, msg))
	}

	if c.Feed.URL == "" {
		add("feed.url", c.Feed.URL, "is required")
	} else if u, err := url.Parse(c.Feed.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file") {
		add("feed.url", c.Feed.URL, "must be an http(s) or file URL")
	}
	switch c.Feed.Format {
	case "xls", "csv":
	default:
		add("feed.format", c.Feed.Format, "must be xls or csv")
	}
	if c.Feed.HeaderRow < 0 {
		add("feed.header_row", c.Feed.HeaderRow, "must not be negative")
	}
	if c.Feed.CacheTTL < 0 {
		add("feed.cache_ttl", c.Feed.CacheTTL.String(), "must not be negative")
	}

	if c.Yandex == nil && c.Ozon == nil {
		add("marketplaces", nil, "at least one of yandex or ozon must be configured")
	}

	if y := c.Yandex; y != nil {
		if y.Token == "" {
			add("yandex.token", "", "is required")
		}
		if len(y.Campaigns) == 0 {
			add("yandex.campaigns", nil, "at least one campaign is required")
		}
		seen := make(map[string]bool, len(y.Campaigns))
		for i, camp := range y.Campaigns {
			prefix := fmt.Sprintf("yandex.campaigns[%d]", i)
			if camp.ID == "" {
				add(prefix+".id", camp.ID, "is required")
			}
			if camp.WarehouseID == "" {
				add(prefix+".warehouse_id", camp.WarehouseID, "is required")
			}
			if seen[camp.Name] {
				add(prefix+".name", camp.Name, "must be unique")
			}
			seen[camp.Name] = true
		}
		errs = append(errs, validateLimits("yandex", y.Limits, y.RateLimit)...)
	}

	if o := c.Ozon; o != nil {
		if o.ClientID == "" {
			add("ozon.client_id", "", "is required")
		}
		if o.Token == "" {
			add("ozon.token", "", "is required")
		}
		errs = append(errs, validateLimits("ozon", o.Limits, o.RateLimit)...)
	}

	if c.Sync.Interval != 0 && c.Sync.Interval < constants.MinSyncInterval {
		add("sync.interval", c.Sync.Interval.String(), fmt.Sprintf("must be at least %s", constants.MinSyncInterval))
	}
	if err := CheckCacheTTL(c.Feed.CacheTTL, c.Sync.Interval); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateLimits(prefix string, l Limits, rate float64) []error {
	var errs []error
	for field, v := range map[string]int{"stocks": l.Stocks, "prices": l.Prices, "page_size": l.PageSize} {
		if v <= 0 {
			errs = append(errs, pkgerrors.NewValidationError(prefix+".limits."+field, v, "must be positive"))
		}
	}
	if rate < 0 {
		errs = append(errs, pkgerrors.NewValidationError(prefix+".rate_limit", rate, "must not be negative"))
	}
	return errs
}

// CheckCacheTTL rejects a feed cache TTL that is not shorter than a non-zero
// sync interval.
func CheckCacheTTL(ttl, interval time.Duration) error {
	if ttl > 0 && interval > 0 && ttl >= interval {
		return pkgerrors.NewValidationError("feed.cache_ttl", ttl.String(), fmt.Sprintf("must be shorter than the sync interval %s", interval))
	}
	return nil
}
