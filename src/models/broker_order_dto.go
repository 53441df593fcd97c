package models

// BrokerOrderDTO is an order record as InvestRight returns it. Missing fields
// decode to their zero values.
type BrokerOrderDTO struct {
	OrderID         string  `json:"order_id"`
	Symbol          string  `json:"symbol"`
	Exchange        string  `json:"exchange"`
	Side            string  `json:"side"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	OrderType       string  `json:"order_type"`
	Product         string  `json:"product"`
	Status          string  `json:"status"`
	FilledQuantity  int     `json:"filled_quantity"`
	PendingQuantity int     `json:"pending_quantity"`
	AveragePrice    float64 `json:"average_price"`
	CreatedAt       string  `json:"created_at"`
}
