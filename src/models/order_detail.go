package models

// OrderDetail is a broker-persisted order translated back into the platform's
// schema.
type OrderDetail struct {
	OrderID         string      `json:"order_id"`
	Symbol          string      `json:"symbol"`
	Exchange        string      `json:"exchange"`
	Side            string      `json:"side"`
	Quantity        int         `json:"quantity"`
	Price           float64     `json:"price"`
	OrderType       OrderType   `json:"order_type"`
	Product         ProductType `json:"product"`
	OrderStatus     string      `json:"order_status"`
	FilledQuantity  int         `json:"filled_quantity"`
	PendingQuantity int         `json:"pending_quantity"`
	AveragePrice    float64     `json:"average_price"`
	Timestamp       string      `json:"timestamp"`
}
