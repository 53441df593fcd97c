package models

import "fmt"

// OrderType is the platform's order type code.
type OrderType string

const (
	OrderTypeMarket        OrderType = "MARKET"
	OrderTypeLimit         OrderType = "LIMIT"
	OrderTypeStopLoss      OrderType = "STOP_LOSS"
	OrderTypeStopLossLimit OrderType = "STOP_LOSS_LIMIT"
)

func (t OrderType) Validate() error {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStopLoss, OrderTypeStopLossLimit:
		return nil
	default:
		return fmt.Errorf("invalid order type: %s", t)
	}
}

// BrokerOrderType is the InvestRight order type code.
type BrokerOrderType string

const (
	BrokerOrderTypeMarket        BrokerOrderType = "MKT"
	BrokerOrderTypeLimit         BrokerOrderType = "LMT"
	BrokerOrderTypeStopLoss      BrokerOrderType = "SL"
	BrokerOrderTypeStopLossLimit BrokerOrderType = "SLL"
)
