package models

// Order is an outbound order in the platform's schema. It has no identity
// until the broker accepts it.
type Order struct {
	Symbol            string      `json:"symbol"`
	Exchange          string      `json:"exchange"`
	Side              OrderSide   `json:"side"`
	Quantity          int         `json:"quantity"`
	Price             float64     `json:"price,omitempty"`
	OrderType         OrderType   `json:"order_type"`
	Product           ProductType `json:"product"`
	Validity          Validity    `json:"validity"`
	StopPrice         float64     `json:"stop_price,omitempty"`
	DisclosedQuantity int         `json:"disclosed_quantity,omitempty"`
}
