package models

// Result is the generic envelope for calls whose broker response is passed
// through without schema translation, e.g. order cancellation.
type Result struct {
	Status  Status                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// OrderResult carries a single translated order, e.g. from placement,
// modification or a point fetch.
type OrderResult struct {
	Status  Status       `json:"status"`
	Message string       `json:"message,omitempty"`
	Order   *OrderDetail `json:"order,omitempty"`
}

// OrderBookResult carries the day's orders. Orders is never nil; failures
// yield an empty list under an error status.
type OrderBookResult struct {
	Status  Status        `json:"status"`
	Message string        `json:"message,omitempty"`
	Orders  []OrderDetail `json:"orders"`
}

type TradeBookResult struct {
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
	Trades  []Trade `json:"trades"`
}

type PositionBookResult struct {
	Status    Status     `json:"status"`
	Message   string     `json:"message,omitempty"`
	Positions []Position `json:"positions"`
}

type HoldingsResult struct {
	Status   Status    `json:"status"`
	Message  string    `json:"message,omitempty"`
	Holdings []Holding `json:"holdings"`
}
