package ozon

type listRequest struct {
	Filter listFilter `json:"filter"`
	LastID string     `json:"last_id"`
	Limit  int        `json:"limit"`
}

type listFilter struct {
	Visibility string `json:"visibility"`
}

type listResponse struct {
	Result struct {
		Items []struct {
			ProductID int64  `json:"product_id"`
			OfferID   string `json:"offer_id"`
		} `json:"items"`
		Total  int    `json:"total"`
		LastID string `json:"last_id"`
	} `json:"result"`
}

type stocksRequest struct {
	Stocks []stock `json:"stocks"`
}

type stock struct {
	OfferID     string `json:"offer_id"`
	Stock       int    `json:"stock"`
	WarehouseID string `json:"warehouse_id,omitempty"`
}

type pricesRequest struct {
	Prices []price `json:"prices"`
}

type price struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}
