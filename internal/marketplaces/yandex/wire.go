package yandex

type listResponse struct {
	Status string `json:"status"`
	Result struct {
		OfferMappingEntries []struct {
			Offer struct {
				ShopSKU string `json:"shopSku"`
			} `json:"offer"`
		} `json:"offerMappingEntries"`
		Paging *struct {
			NextPageToken string `json:"nextPageToken"`
		} `json:"paging"`
	} `json:"result"`
}

type stocksRequest struct {
	SKUs []skuStock `json:"skus"`
}

type skuStock struct {
	SKU         string      `json:"sku"`
	WarehouseID string      `json:"warehouseId"`
	Items       []stockItem `json:"items"`
}

type stockItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

type pricesRequest struct {
	Offers []offerPrice `json:"offers"`
}

type offerPrice struct {
	ID    string `json:"id"`
	Price price  `json:"price"`
}

type price struct {
	Value      int64  `json:"value"`
	CurrencyID string `json:"currencyId"`
}
