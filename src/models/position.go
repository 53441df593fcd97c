package models

// BrokerPositionDTO is a position record as InvestRight returns it.
type BrokerPositionDTO struct {
	Symbol        string  `json:"symbol"`
	Exchange      string  `json:"exchange"`
	Quantity      int     `json:"quantity"`
	Product       string  `json:"product"`
	AveragePrice  float64 `json:"average_price"`
	Pnl           float64 `json:"pnl"`
	PnlPercentage float64 `json:"pnl_percentage"`
}

// Position is a read-only snapshot of an open position in the platform's
// schema. The broker mutates it continuously with market activity.
type Position struct {
	Symbol        string      `json:"symbol"`
	Exchange      string      `json:"exchange"`
	Quantity      int         `json:"quantity"`
	Product       ProductType `json:"product"`
	Price         float64     `json:"price"`
	Pnl           float64     `json:"pnl"`
	PnlPercentage float64     `json:"pnl_percentage"`
}

// IsZero reports whether p is the empty position, the "no match" result of a
// position lookup.
func (p Position) IsZero() bool {
	return p == Position{}
}
