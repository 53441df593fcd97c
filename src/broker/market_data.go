package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/tradekit/investright/src/models"
)

// MarketDataGateway wraps the quote, history and depth endpoints. Market data
// is passed through untranslated: the platform consumes the broker's shapes
// directly.
type MarketDataGateway struct {
	client  *Client
	encoder *schema.Encoder
}

func NewMarketDataGateway(client *Client) *MarketDataGateway {
	return &MarketDataGateway{
		client:  client,
		encoder: schema.NewEncoder(),
	}
}

type quoteQuery struct {
	Symbol   string `schema:"symbol"`
	Exchange string `schema:"exchange"`
}

type historyQuery struct {
	Symbol    string `schema:"symbol"`
	Exchange  string `schema:"exchange"`
	Interval  string `schema:"interval"`
	StartDate string `schema:"start_date"`
	EndDate   string `schema:"end_date"`
}

// GetQuotes fetches the live quote for one symbol.
func (g *MarketDataGateway) GetQuotes(ctx context.Context, symbol, exchange string, auth string) map[string]interface{} {
	return g.passthroughCall(ctx, "/quotes", quoteQuery{Symbol: symbol, Exchange: exchange}, auth, nil)
}

// GetHistory fetches historical OHLCV candles. interval is a broker candle
// interval (1m, 5m, 15m, 30m, 60m, 1d); startDate and endDate are YYYY-MM-DD.
// On failure the result carries an empty candle list so callers can iterate
// safely.
func (g *MarketDataGateway) GetHistory(ctx context.Context, symbol, exchange, interval, startDate, endDate string, auth string) map[string]interface{} {
	query := historyQuery{
		Symbol:    symbol,
		Exchange:  exchange,
		Interval:  interval,
		StartDate: startDate,
		EndDate:   endDate,
	}

	return g.passthroughCall(ctx, "/history", query, auth, map[string]interface{}{
		"candles": []interface{}{},
	})
}

// GetDepth fetches the market depth for one symbol.
func (g *MarketDataGateway) GetDepth(ctx context.Context, symbol, exchange string, auth string) map[string]interface{} {
	return g.passthroughCall(ctx, "/depth", quoteQuery{Symbol: symbol, Exchange: exchange}, auth, nil)
}

// passthroughCall issues one GET with the encoded query and returns the
// parsed body verbatim. extra is merged into failure results, e.g. history's
// empty candle list.
func (g *MarketDataGateway) passthroughCall(ctx context.Context, endpoint string, query interface{}, auth string, extra map[string]interface{}) map[string]interface{} {
	params := url.Values{}
	if err := g.encoder.Encode(query, params); err != nil {
		log.Errorf("MarketDataGateway: failed to encode query for %s: %v", endpoint, err)
		return errorResult(err.Error(), extra)
	}

	fullEndpoint := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	body, _, err := g.client.do(ctx, http.MethodGet, fullEndpoint, auth, nil)
	if err != nil {
		log.Errorf("MarketDataGateway: %s failed: %v", endpoint, err)
		return errorResult(err.Error(), extra)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		log.Errorf("MarketDataGateway: failed to parse %s response: %v", endpoint, err)
		return errorResult(err.Error(), extra)
	}

	return data
}

func errorResult(message string, extra map[string]interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"status":  string(models.StatusError),
		"message": message,
	}
	for k, v := range extra {
		result[k] = v
	}

	return result
}
