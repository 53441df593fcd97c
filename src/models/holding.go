package models

// BrokerHoldingDTO is a holding record as InvestRight returns it.
type BrokerHoldingDTO struct {
	Symbol       string  `json:"symbol"`
	Exchange     string  `json:"exchange"`
	Quantity     int     `json:"quantity"`
	AveragePrice float64 `json:"average_price"`
	Value        float64 `json:"value"`
	Pnl          float64 `json:"pnl"`
}

// Holding is a delivery-based long-term holding in the platform's schema.
type Holding struct {
	Symbol   string  `json:"symbol"`
	Exchange string  `json:"exchange"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
	Pnl      float64 `json:"pnl"`
}
