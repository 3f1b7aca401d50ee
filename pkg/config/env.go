package config

import (
	"strconv"
	"strings"
)

// Environment variables understood by ApplyEnv. The Yandex campaign pair
// predates the YAML file and maps onto campaigns named "fbs" and "dbs".
const (
	EnvMarketToken     = "MARKET_TOKEN"
	EnvFBSCampaign     = "FBS_ID"
	EnvDBSCampaign     = "DBS_ID"
	EnvFBSWarehouse    = "WAREHOUSE_FBS_ID"
	EnvDBSWarehouse    = "WAREHOUSE_DBS_ID"
	EnvSellerToken     = "SELLER_TOKEN"
	EnvClientID        = "CLIENT_ID"
	EnvOzonWarehouse   = "OZON_WAREHOUSE_ID"
	EnvFeedURL         = "STOCKSYNC_FEED_URL"
	EnvYandexRateLimit = "YANDEX_RATE_LIMIT"
	EnvOzonRateLimit   = "OZON_RATE_LIMIT"
)

// LegacyCampaigns names the campaigns built from FBS_ID and DBS_ID.
var LegacyCampaigns = []string{"fbs", "dbs"}

// ApplyEnv overlays environment values onto c. Values from the environment
// win over the file. Marketplace sections are created when their credentials
// are present in the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvFeedURL); v != "" {
		c.Feed.URL = v
	}

	if token := getenv(EnvMarketToken); token != "" || c.Yandex != nil {
		if c.Yandex == nil {
			c.Yandex = &YandexConfig{}
		}
		if token != "" {
			c.Yandex.Token = token
		}
		c.Yandex.mergeCampaign(LegacyCampaigns[0], getenv(EnvFBSCampaign), getenv(EnvFBSWarehouse))
		c.Yandex.mergeCampaign(LegacyCampaigns[1], getenv(EnvDBSCampaign), getenv(EnvDBSWarehouse))
		if rate, ok := parseRate(getenv(EnvYandexRateLimit)); ok {
			c.Yandex.RateLimit = rate
		}
	}

	clientID, sellerToken := getenv(EnvClientID), getenv(EnvSellerToken)
	if clientID != "" || sellerToken != "" || c.Ozon != nil {
		if c.Ozon == nil {
			c.Ozon = &OzonConfig{}
		}
		if clientID != "" {
			c.Ozon.ClientID = clientID
		}
		if sellerToken != "" {
			c.Ozon.Token = sellerToken
		}
		if wh := getenv(EnvOzonWarehouse); wh != "" {
			c.Ozon.WarehouseID = wh
		}
		if rate, ok := parseRate(getenv(EnvOzonRateLimit)); ok {
			c.Ozon.RateLimit = rate
		}
	}

	c.ApplyDefaults()
}

// mergeCampaign updates the campaign called name, appending it when absent.
// Nothing happens when neither id nor warehouse is set.
func (y *YandexConfig) mergeCampaign(name, id, warehouse string) {
	if id == "" && warehouse == "" {
		return
	}
	for i := range y.Campaigns {
		if y.Campaigns[i].Name != name {
			continue
		}
		if id != "" {
			y.Campaigns[i].ID = id
		}
		if warehouse != "" {
			y.Campaigns[i].WarehouseID = warehouse
		}
		return
	}
	y.Campaigns = append(y.Campaigns, Campaign{Name: name, ID: id, WarehouseID: warehouse})
}

func parseRate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
