package models

// BrokerOrderRequest is an outbound order in InvestRight's schema. Price,
// StopPrice and DisclosedQuantity are omitted from the payload entirely when
// zero; the broker rejects explicit zero prices on market orders.
type BrokerOrderRequest struct {
	Symbol            string            `json:"symbol"`
	Exchange          string            `json:"exchange"`
	Side              OrderSide         `json:"side"`
	Quantity          int               `json:"quantity"`
	OrderType         BrokerOrderType   `json:"order_type"`
	Product           BrokerProductType `json:"product"`
	Validity          Validity          `json:"validity"`
	Price             float64           `json:"price,omitempty"`
	StopPrice         float64           `json:"stop_price,omitempty"`
	DisclosedQuantity int               `json:"disclosed_quantity,omitempty"`
}
