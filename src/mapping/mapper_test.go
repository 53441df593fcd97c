package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradekit/investright/src/models"
	"github.com/tradekit/investright/src/symbols"
)

type failingResolver struct{}

func (failingResolver) ToBroker(ctx context.Context, symbol, exchange string) (string, error) {
	return "", errors.New("lookup store is down")
}

func (failingResolver) ToPlatform(ctx context.Context, brokerSymbol, exchange string) (string, error) {
	return "", errors.New("lookup store is down")
}

func Test_OrderTypeRoundTrip(t *testing.T) {
	ctx := context.Background()
	mapper := NewMapper(symbols.NewMapResolver())

	orderTypes := []models.OrderType{
		models.OrderTypeMarket,
		models.OrderTypeLimit,
		models.OrderTypeStopLoss,
		models.OrderTypeStopLossLimit,
	}

	for _, orderType := range orderTypes {
		t.Run(string(orderType), func(t *testing.T) {
			// arrange
			order := models.Order{
				Symbol:    "INFY",
				Exchange:  "NSE",
				Side:      models.OrderSideBuy,
				Quantity:  1,
				OrderType: orderType,
				Product:   models.ProductTypeMIS,
				Validity:  models.ValidityDay,
			}

			// act
			brokerOrder, err := mapper.OrderToBroker(ctx, order)
			require.NoError(t, err)

			detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{
				Symbol:    brokerOrder.Symbol,
				Exchange:  brokerOrder.Exchange,
				OrderType: string(brokerOrder.OrderType),
				Product:   string(brokerOrder.Product),
			})

			// assert
			require.Equal(t, orderType, detail.OrderType)
		})
	}
}

func Test_ProductMapping(t *testing.T) {
	ctx := context.Background()
	mapper := NewMapper(symbols.NewMapResolver())

	t.Run("broker codes round-trip exactly", func(t *testing.T) {
		for _, product := range []models.ProductType{models.ProductTypeMIS, models.ProductTypeCNC, models.ProductTypeNRML} {
			brokerOrder, err := mapper.OrderToBroker(ctx, models.Order{Symbol: "INFY", Exchange: "NSE", Product: product})
			require.NoError(t, err)

			detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{Product: string(brokerOrder.Product)})
			require.Equal(t, product, detail.Product)
		}
	})

	t.Run("aliases collapse and do not round-trip", func(t *testing.T) {
		cases := map[models.ProductType]models.BrokerProductType{
			models.ProductTypeIntraday: models.BrokerProductTypeMIS,
			models.ProductTypeDelivery: models.BrokerProductTypeCNC,
			models.ProductTypeMargin:   models.BrokerProductTypeNRML,
		}

		for alias, brokerProduct := range cases {
			brokerOrder, err := mapper.OrderToBroker(ctx, models.Order{Symbol: "INFY", Exchange: "NSE", Product: alias})
			require.NoError(t, err)
			require.Equal(t, brokerProduct, brokerOrder.Product)

			detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{Product: string(brokerOrder.Product)})
			assert.NotEqual(t, alias, detail.Product)
		}
	})
}

func Test_UnknownValuesDefault(t *testing.T) {
	ctx := context.Background()
	mapper := NewMapper(symbols.NewMapResolver())

	t.Run("absent enum fields take defaults", func(t *testing.T) {
		// arrange: only symbol, exchange and quantity set
		order := models.Order{Symbol: "INFY", Exchange: "NSE", Quantity: 5}

		// act
		brokerOrder, err := mapper.OrderToBroker(ctx, order)

		// assert
		require.NoError(t, err)
		require.Equal(t, models.OrderSideBuy, brokerOrder.Side)
		require.Equal(t, models.BrokerOrderTypeMarket, brokerOrder.OrderType)
		require.Equal(t, models.BrokerProductTypeMIS, brokerOrder.Product)
		require.Equal(t, models.ValidityDay, brokerOrder.Validity)
	})

	t.Run("unknown enum values take defaults", func(t *testing.T) {
		order := models.Order{
			Symbol:    "INFY",
			Exchange:  "NSE",
			Side:      models.OrderSide("SHORT"),
			OrderType: models.OrderType("BRACKET"),
			Product:   models.ProductType("BO"),
			Validity:  models.Validity("GTD"),
		}

		brokerOrder, err := mapper.OrderToBroker(ctx, order)

		require.NoError(t, err)
		require.Equal(t, models.OrderSideBuy, brokerOrder.Side)
		require.Equal(t, models.BrokerOrderTypeMarket, brokerOrder.OrderType)
		require.Equal(t, models.BrokerProductTypeMIS, brokerOrder.Product)
		require.Equal(t, models.ValidityDay, brokerOrder.Validity)
	})

	t.Run("unknown broker codes reverse-map to defaults", func(t *testing.T) {
		detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{OrderType: "BO", Product: "BO"})

		require.Equal(t, models.OrderTypeMarket, detail.OrderType)
		require.Equal(t, models.ProductTypeMIS, detail.Product)
	})
}

func Test_OptionalFieldsOmitted(t *testing.T) {
	ctx := context.Background()
	mapper := NewMapper(symbols.NewMapResolver())

	t.Run("zero optionals are absent from the payload", func(t *testing.T) {
		// arrange
		brokerOrder, err := mapper.OrderToBroker(ctx, models.Order{Symbol: "INFY", Exchange: "NSE", Quantity: 1})
		require.NoError(t, err)

		// act
		payload, err := json.Marshal(brokerOrder)
		require.NoError(t, err)

		var fields map[string]interface{}
		require.NoError(t, json.Unmarshal(payload, &fields))

		// assert
		assert.NotContains(t, fields, "price")
		assert.NotContains(t, fields, "stop_price")
		assert.NotContains(t, fields, "disclosed_quantity")
	})

	t.Run("set optionals are present with numeric types", func(t *testing.T) {
		brokerOrder, err := mapper.OrderToBroker(ctx, models.Order{
			Symbol:            "INFY",
			Exchange:          "NSE",
			Quantity:          1,
			Price:             1500.5,
			StopPrice:         1490.25,
			DisclosedQuantity: 1,
		})
		require.NoError(t, err)

		payload, err := json.Marshal(brokerOrder)
		require.NoError(t, err)

		var fields map[string]interface{}
		require.NoError(t, json.Unmarshal(payload, &fields))

		assert.Equal(t, 1500.5, fields["price"])
		assert.Equal(t, 1490.25, fields["stop_price"])
		assert.Equal(t, float64(1), fields["disclosed_quantity"])
	})
}

func Test_SymbolResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("resolver hit translates both ways", func(t *testing.T) {
		// arrange
		resolver := symbols.NewMapResolver()
		resolver.Add("NSE", "INFY", "INFY-EQ")
		mapper := NewMapper(resolver)

		// act
		brokerOrder, err := mapper.OrderToBroker(ctx, models.Order{Symbol: "INFY", Exchange: "NSE"})
		require.NoError(t, err)

		detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{Symbol: "INFY-EQ", Exchange: "NSE"})

		// assert
		require.Equal(t, "INFY-EQ", brokerOrder.Symbol)
		require.Equal(t, "INFY", detail.Symbol)
	})

	t.Run("resolver miss keeps the symbol unchanged", func(t *testing.T) {
		mapper := NewMapper(symbols.NewMapResolver())

		brokerOrder, err := mapper.OrderToBroker(ctx, models.Order{Symbol: "INFY", Exchange: "NSE"})
		require.NoError(t, err)

		detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{Symbol: "INFY-EQ", Exchange: "NSE"})

		require.Equal(t, "INFY", brokerOrder.Symbol)
		require.Equal(t, "INFY-EQ", detail.Symbol)
	})

	t.Run("resolver failure propagates on the outbound path", func(t *testing.T) {
		mapper := NewMapper(failingResolver{})

		_, err := mapper.OrderToBroker(ctx, models.Order{Symbol: "INFY", Exchange: "NSE"})

		require.Error(t, err)
	})

	t.Run("resolver failure falls back on the inbound path", func(t *testing.T) {
		mapper := NewMapper(failingResolver{})

		detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{Symbol: "INFY-EQ", Exchange: "NSE"})

		require.Equal(t, "INFY-EQ", detail.Symbol)
	})
}

func Test_BrokerRecordConversions(t *testing.T) {
	ctx := context.Background()
	resolver := symbols.NewMapResolver()
	resolver.Add("NSE", "INFY", "INFY-EQ")
	mapper := NewMapper(resolver)

	t.Run("order record fields copy through", func(t *testing.T) {
		detail := mapper.BrokerOrderToPlatform(ctx, models.BrokerOrderDTO{
			OrderID:         "240826000000123",
			Symbol:          "INFY-EQ",
			Exchange:        "NSE",
			Side:            "BUY",
			Quantity:        10,
			Price:           1500,
			OrderType:       "LMT",
			Product:         "CNC",
			Status:          "open",
			FilledQuantity:  4,
			PendingQuantity: 6,
			AveragePrice:    1499.5,
			CreatedAt:       "2024-08-26T09:15:00+05:30",
		})

		require.Equal(t, models.OrderDetail{
			OrderID:         "240826000000123",
			Symbol:          "INFY",
			Exchange:        "NSE",
			Side:            "BUY",
			Quantity:        10,
			Price:           1500,
			OrderType:       models.OrderTypeLimit,
			Product:         models.ProductTypeCNC,
			OrderStatus:     "open",
			FilledQuantity:  4,
			PendingQuantity: 6,
			AveragePrice:    1499.5,
			Timestamp:       "2024-08-26T09:15:00+05:30",
		}, detail)
	})

	t.Run("trade record", func(t *testing.T) {
		trade := mapper.BrokerTradeToPlatform(ctx, models.BrokerTradeDTO{
			TradeID:    "T1",
			OrderID:    "O1",
			Symbol:     "INFY-EQ",
			Exchange:   "NSE",
			Side:       "SELL",
			Quantity:   2,
			Price:      1501.1,
			ExecutedAt: "2024-08-26T10:00:00+05:30",
		})

		require.Equal(t, "INFY", trade.Symbol)
		require.Equal(t, "T1", trade.TradeID)
		require.Equal(t, "2024-08-26T10:00:00+05:30", trade.Timestamp)
	})

	t.Run("position record", func(t *testing.T) {
		position := mapper.BrokerPositionToPlatform(ctx, models.BrokerPositionDTO{
			Symbol:        "INFY-EQ",
			Exchange:      "NSE",
			Quantity:      10,
			Product:       "NRML",
			AveragePrice:  1480,
			Pnl:           200,
			PnlPercentage: 1.35,
		})

		require.Equal(t, "INFY", position.Symbol)
		require.Equal(t, models.ProductTypeNRML, position.Product)
		require.Equal(t, 1480.0, position.Price)
	})

	t.Run("holding record", func(t *testing.T) {
		holding := mapper.BrokerHoldingToPlatform(ctx, models.BrokerHoldingDTO{
			Symbol:       "INFY-EQ",
			Exchange:     "NSE",
			Quantity:     25,
			AveragePrice: 1200,
			Value:        37500,
			Pnl:          7500,
		})

		require.Equal(t, "INFY", holding.Symbol)
		require.Equal(t, 37500.0, holding.Value)
	})
}
