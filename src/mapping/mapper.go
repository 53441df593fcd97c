// Package mapping translates order, trade, position and holding records
// between the platform schema and InvestRight's schema. Enumerated fields go
// through fixed tables; unknown values fall back to documented defaults
// (side BUY, order type MKT, product MIS, validity DAY) instead of failing.
package mapping

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/tradekit/investright/src/models"
	"github.com/tradekit/investright/src/symbols"
)

type Mapper struct {
	resolver symbols.Resolver
}

func NewMapper(resolver symbols.Resolver) *Mapper {
	return &Mapper{resolver: resolver}
}

// OrderToBroker converts an outbound platform order to the broker schema. A
// resolver failure is returned to the caller: a broken order must not be
// silently sent. A resolver miss falls back to the untranslated symbol.
func (m *Mapper) OrderToBroker(ctx context.Context, order models.Order) (models.BrokerOrderRequest, error) {
	brSymbol, err := m.resolver.ToBroker(ctx, order.Symbol, order.Exchange)
	if err != nil {
		return models.BrokerOrderRequest{}, fmt.Errorf("OrderToBroker: failed to resolve symbol %s/%s: %w", order.Symbol, order.Exchange, err)
	}

	if brSymbol == "" {
		brSymbol = order.Symbol
	}

	side, ok := sideToBroker[order.Side]
	if !ok {
		side = models.OrderSideBuy
	}

	orderType, ok := orderTypeToBroker[order.OrderType]
	if !ok {
		orderType = models.BrokerOrderTypeMarket
	}

	product, ok := productToBroker[order.Product]
	if !ok {
		product = models.BrokerProductTypeMIS
	}

	validity, ok := validityToBroker[order.Validity]
	if !ok {
		validity = models.ValidityDay
	}

	brokerOrder := models.BrokerOrderRequest{
		Symbol:            brSymbol,
		Exchange:          order.Exchange,
		Side:              side,
		Quantity:          order.Quantity,
		OrderType:         orderType,
		Product:           product,
		Validity:          validity,
		Price:             order.Price,
		StopPrice:         order.StopPrice,
		DisclosedQuantity: order.DisclosedQuantity,
	}

	log.Debugf("OrderToBroker: mapped order to broker format: %+v", brokerOrder)

	return brokerOrder, nil
}

// BrokerOrderToPlatform converts a broker order record back to the platform
// schema. It never fails: field values that do not reverse-map take their
// defaults and symbol lookup falls back to the broker symbol.
func (m *Mapper) BrokerOrderToPlatform(ctx context.Context, dto models.BrokerOrderDTO) models.OrderDetail {
	orderType, ok := orderTypeFromBroker[models.BrokerOrderType(dto.OrderType)]
	if !ok {
		orderType = models.OrderTypeMarket
	}

	product, ok := productFromBroker[models.BrokerProductType(dto.Product)]
	if !ok {
		product = models.ProductTypeMIS
	}

	return models.OrderDetail{
		OrderID:         dto.OrderID,
		Symbol:          m.resolveToPlatform(ctx, dto.Symbol, dto.Exchange),
		Exchange:        dto.Exchange,
		Side:            dto.Side,
		Quantity:        dto.Quantity,
		Price:           dto.Price,
		OrderType:       orderType,
		Product:         product,
		OrderStatus:     dto.Status,
		FilledQuantity:  dto.FilledQuantity,
		PendingQuantity: dto.PendingQuantity,
		AveragePrice:    dto.AveragePrice,
		Timestamp:       dto.CreatedAt,
	}
}

// BrokerTradeToPlatform converts a broker trade record to the platform
// schema.
func (m *Mapper) BrokerTradeToPlatform(ctx context.Context, dto models.BrokerTradeDTO) models.Trade {
	return models.Trade{
		TradeID:   dto.TradeID,
		OrderID:   dto.OrderID,
		Symbol:    m.resolveToPlatform(ctx, dto.Symbol, dto.Exchange),
		Exchange:  dto.Exchange,
		Side:      dto.Side,
		Quantity:  dto.Quantity,
		Price:     dto.Price,
		Timestamp: dto.ExecutedAt,
	}
}

// BrokerPositionToPlatform converts a broker position record to the platform
// schema.
func (m *Mapper) BrokerPositionToPlatform(ctx context.Context, dto models.BrokerPositionDTO) models.Position {
	product, ok := productFromBroker[models.BrokerProductType(dto.Product)]
	if !ok {
		product = models.ProductTypeMIS
	}

	return models.Position{
		Symbol:        m.resolveToPlatform(ctx, dto.Symbol, dto.Exchange),
		Exchange:      dto.Exchange,
		Quantity:      dto.Quantity,
		Product:       product,
		Price:         dto.AveragePrice,
		Pnl:           dto.Pnl,
		PnlPercentage: dto.PnlPercentage,
	}
}

// BrokerHoldingToPlatform converts a broker holding record to the platform
// schema.
func (m *Mapper) BrokerHoldingToPlatform(ctx context.Context, dto models.BrokerHoldingDTO) models.Holding {
	return models.Holding{
		Symbol:   m.resolveToPlatform(ctx, dto.Symbol, dto.Exchange),
		Exchange: dto.Exchange,
		Quantity: dto.Quantity,
		Price:    dto.AveragePrice,
		Value:    dto.Value,
		Pnl:      dto.Pnl,
	}
}

func (m *Mapper) resolveToPlatform(ctx context.Context, brokerSymbol, exchange string) string {
	symbol, err := m.resolver.ToPlatform(ctx, brokerSymbol, exchange)
	if err != nil {
		log.Warnf("mapping: symbol lookup failed for %s/%s, keeping broker symbol: %v", brokerSymbol, exchange, err)
		return brokerSymbol
	}

	if symbol == "" {
		return brokerSymbol
	}

	return symbol
}
