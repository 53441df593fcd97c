package models

// BrokerTradeDTO is a trade record as InvestRight returns it.
type BrokerTradeDTO struct {
	TradeID    string  `json:"trade_id"`
	OrderID    string  `json:"order_id"`
	Symbol     string  `json:"symbol"`
	Exchange   string  `json:"exchange"`
	Side       string  `json:"side"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	ExecutedAt string  `json:"executed_at"`
}

// Trade is an executed fill in the platform's schema. Immutable once the
// broker reports it.
type Trade struct {
	TradeID   string  `json:"trade_id"`
	OrderID   string  `json:"order_id"`
	Symbol    string  `json:"symbol"`
	Exchange  string  `json:"exchange"`
	Side      string  `json:"side"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
}
