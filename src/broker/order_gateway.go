package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/tradekit/investright/src/mapping"
	"github.com/tradekit/investright/src/models"
	"github.com/tradekit/investright/src/symbols"
)

// OrderGateway wraps the order lifecycle endpoints. Each method performs one
// HTTP call and translates the broker record through the field mapper.
type OrderGateway struct {
	client   *Client
	resolver symbols.Resolver
	mapper   *mapping.Mapper
}

func NewOrderGateway(client *Client, resolver symbols.Resolver) *OrderGateway {
	return &OrderGateway{
		client:   client,
		resolver: resolver,
		mapper:   mapping.NewMapper(resolver),
	}
}

// PlaceOrder submits a new order. A mapping failure means a malformed
// outbound order and is reported as an error result without touching the
// wire.
func (g *OrderGateway) PlaceOrder(ctx context.Context, order models.Order, auth string) models.OrderResult {
	brokerOrder, err := g.mapper.OrderToBroker(ctx, order)
	if err != nil {
		log.Errorf("PlaceOrder: failed to map order: %v", err)
		return models.OrderResult{Status: models.StatusError, Message: err.Error()}
	}

	payload, err := json.Marshal(brokerOrder)
	if err != nil {
		log.Errorf("PlaceOrder: failed to marshal order: %v", err)
		return models.OrderResult{Status: models.StatusError, Message: err.Error()}
	}

	return g.orderCall(ctx, http.MethodPost, "/orders", auth, payload)
}

// ModifyOrder replaces the mutable fields of a pending order.
func (g *OrderGateway) ModifyOrder(ctx context.Context, orderID string, order models.Order, auth string) models.OrderResult {
	brokerOrder, err := g.mapper.OrderToBroker(ctx, order)
	if err != nil {
		log.Errorf("ModifyOrder: failed to map order %s: %v", orderID, err)
		return models.OrderResult{Status: models.StatusError, Message: err.Error()}
	}

	payload, err := json.Marshal(brokerOrder)
	if err != nil {
		log.Errorf("ModifyOrder: failed to marshal order %s: %v", orderID, err)
		return models.OrderResult{Status: models.StatusError, Message: err.Error()}
	}

	return g.orderCall(ctx, http.MethodPut, fmt.Sprintf("/orders/%s", orderID), auth, payload)
}

// CancelOrder cancels a pending order. The broker's response body is passed
// through untranslated.
func (g *OrderGateway) CancelOrder(ctx context.Context, orderID string, auth string) models.Result {
	body, status, err := g.client.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%s", orderID), auth, nil)
	if err != nil {
		log.Errorf("CancelOrder: failed to cancel order %s: %v", orderID, err)
		return models.Result{Status: models.StatusError, Message: err.Error()}
	}

	if !is2xx(status) {
		msg := parseErrorMessage(body)
		log.Errorf("CancelOrder: API error: %d - %s", status, msg)
		return models.Result{Status: models.StatusError, Message: msg, Data: parseBody(body)}
	}

	return models.Result{Status: models.StatusSuccess, Data: parseBody(body)}
}

// GetOrder fetches a single order by its broker-assigned id.
func (g *OrderGateway) GetOrder(ctx context.Context, orderID string, auth string) models.OrderResult {
	return g.orderCall(ctx, http.MethodGet, fmt.Sprintf("/orders/%s", orderID), auth, nil)
}

// GetOrderBook fetches the day's orders. Orders is always non-nil so callers
// can range over it without checking the status first.
func (g *OrderGateway) GetOrderBook(ctx context.Context, auth string) models.OrderBookResult {
	orders := make([]models.OrderDetail, 0)

	var resp struct {
		Status string                  `json:"status"`
		Orders []models.BrokerOrderDTO `json:"orders"`
	}
	if err := g.listCall(ctx, "/orders", auth, &resp); err != nil {
		log.Errorf("GetOrderBook: %v", err)
		return models.OrderBookResult{Status: models.StatusError, Message: err.Error(), Orders: orders}
	}

	if resp.Status == string(models.StatusError) {
		return models.OrderBookResult{Status: models.StatusError, Orders: orders}
	}

	for _, dto := range resp.Orders {
		orders = append(orders, g.mapper.BrokerOrderToPlatform(ctx, dto))
	}

	return models.OrderBookResult{Status: models.StatusSuccess, Orders: orders}
}

// GetTradeBook fetches the day's executed trades.
func (g *OrderGateway) GetTradeBook(ctx context.Context, auth string) models.TradeBookResult {
	trades := make([]models.Trade, 0)

	var resp struct {
		Status string                  `json:"status"`
		Trades []models.BrokerTradeDTO `json:"trades"`
	}
	if err := g.listCall(ctx, "/trades/book", auth, &resp); err != nil {
		log.Errorf("GetTradeBook: %v", err)
		return models.TradeBookResult{Status: models.StatusError, Message: err.Error(), Trades: trades}
	}

	if resp.Status == string(models.StatusError) {
		return models.TradeBookResult{Status: models.StatusError, Trades: trades}
	}

	for _, dto := range resp.Trades {
		trades = append(trades, g.mapper.BrokerTradeToPlatform(ctx, dto))
	}

	return models.TradeBookResult{Status: models.StatusSuccess, Trades: trades}
}

// GetPositions fetches all open positions.
func (g *OrderGateway) GetPositions(ctx context.Context, auth string) models.PositionBookResult {
	positions := make([]models.Position, 0)

	dtos, err := g.fetchPositions(ctx, auth)
	if err != nil {
		log.Errorf("GetPositions: %v", err)
		return models.PositionBookResult{Status: models.StatusError, Message: err.Error(), Positions: positions}
	}

	for _, dto := range dtos {
		positions = append(positions, g.mapper.BrokerPositionToPlatform(ctx, dto))
	}

	return models.PositionBookResult{Status: models.StatusSuccess, Positions: positions}
}

// GetHoldings fetches the delivery holdings.
func (g *OrderGateway) GetHoldings(ctx context.Context, auth string) models.HoldingsResult {
	holdings := make([]models.Holding, 0)

	var resp struct {
		Status   string                    `json:"status"`
		Holdings []models.BrokerHoldingDTO `json:"holdings"`
	}
	if err := g.listCall(ctx, "/holdings", auth, &resp); err != nil {
		log.Errorf("GetHoldings: %v", err)
		return models.HoldingsResult{Status: models.StatusError, Message: err.Error(), Holdings: holdings}
	}

	if resp.Status == string(models.StatusError) {
		return models.HoldingsResult{Status: models.StatusError, Holdings: holdings}
	}

	for _, dto := range resp.Holdings {
		holdings = append(holdings, g.mapper.BrokerHoldingToPlatform(ctx, dto))
	}

	return models.HoldingsResult{Status: models.StatusSuccess, Holdings: holdings}
}

// GetOpenPosition scans the position list for the one matching the platform
// symbol and exchange, translating the symbol to its broker form first. The
// zero Position means no match. Position lists are one account's open
// positions, so a linear scan is fine. product is accepted for call-site
// parity; positions are keyed by symbol and exchange.
func (g *OrderGateway) GetOpenPosition(ctx context.Context, symbol, exchange string, product models.ProductType, auth string) models.Position {
	dtos, err := g.fetchPositions(ctx, auth)
	if err != nil {
		log.Errorf("GetOpenPosition: %v", err)
		return models.Position{}
	}

	brSymbol, err := g.resolver.ToBroker(ctx, symbol, exchange)
	if err != nil {
		log.Errorf("GetOpenPosition: failed to resolve symbol %s/%s: %v", symbol, exchange, err)
		return models.Position{}
	}

	if brSymbol == "" {
		brSymbol = symbol
	}

	for _, dto := range dtos {
		if dto.Symbol == brSymbol && dto.Exchange == exchange {
			return g.mapper.BrokerPositionToPlatform(ctx, dto)
		}
	}

	return models.Position{}
}

// orderCall performs one order lifecycle request and translates the response.
// A 2xx with an empty body synthesizes a bare success: the broker
// acknowledges cancellation-like mutations without a record.
func (g *OrderGateway) orderCall(ctx context.Context, method, endpoint, auth string, payload []byte) models.OrderResult {
	body, status, err := g.client.do(ctx, method, endpoint, auth, payload)
	if err != nil {
		log.Errorf("OrderGateway: %s %s failed: %v", method, endpoint, err)
		return models.OrderResult{Status: models.StatusError, Message: err.Error()}
	}

	if !is2xx(status) {
		msg := parseErrorMessage(body)
		log.Errorf("OrderGateway: API error: %d - %s", status, msg)
		return models.OrderResult{Status: models.StatusError, Message: msg}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return models.OrderResult{Status: models.StatusSuccess}
	}

	var dto models.BrokerOrderDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		log.Errorf("OrderGateway: failed to parse order response: %v", err)
		return models.OrderResult{Status: models.StatusError, Message: err.Error()}
	}

	detail := g.mapper.BrokerOrderToPlatform(ctx, dto)

	return models.OrderResult{Status: models.StatusSuccess, Order: &detail}
}

// listCall performs one read request and decodes the list envelope into out.
// An empty 2xx body leaves out at its zero value, which the list methods
// report as an empty successful listing.
func (g *OrderGateway) listCall(ctx context.Context, endpoint, auth string, out interface{}) error {
	body, status, err := g.client.do(ctx, http.MethodGet, endpoint, auth, nil)
	if err != nil {
		return err
	}

	if !is2xx(status) {
		return fmt.Errorf("API error: %d - %s", status, parseErrorMessage(body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func (g *OrderGateway) fetchPositions(ctx context.Context, auth string) ([]models.BrokerPositionDTO, error) {
	var resp struct {
		Status    string                     `json:"status"`
		Positions []models.BrokerPositionDTO `json:"positions"`
	}
	if err := g.listCall(ctx, "/positions", auth, &resp); err != nil {
		return nil, err
	}

	if resp.Status == string(models.StatusError) {
		return nil, fmt.Errorf("broker reported an error fetching positions")
	}

	return resp.Positions, nil
}

func parseBody(body []byte) map[string]interface{} {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}

	return data
}
