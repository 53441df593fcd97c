package mapping

import "github.com/tradekit/investright/src/models"

var orderTypeToBroker = map[models.OrderType]models.BrokerOrderType{
	models.OrderTypeMarket:        models.BrokerOrderTypeMarket,
	models.OrderTypeLimit:         models.BrokerOrderTypeLimit,
	models.OrderTypeStopLoss:      models.BrokerOrderTypeStopLoss,
	models.OrderTypeStopLossLimit: models.BrokerOrderTypeStopLossLimit,
}

var orderTypeFromBroker = map[models.BrokerOrderType]models.OrderType{
	models.BrokerOrderTypeMarket:        models.OrderTypeMarket,
	models.BrokerOrderTypeLimit:         models.OrderTypeLimit,
	models.BrokerOrderTypeStopLoss:      models.OrderTypeStopLoss,
	models.BrokerOrderTypeStopLossLimit: models.OrderTypeStopLossLimit,
}

// productToBroker is many-to-one: the INTRADAY, DELIVERY and MARGIN aliases
// collapse onto the three broker codes, so an alias does not survive a round
// trip. The reverse table below is one-to-one.
var productToBroker = map[models.ProductType]models.BrokerProductType{
	models.ProductTypeMIS:      models.BrokerProductTypeMIS,
	models.ProductTypeIntraday: models.BrokerProductTypeMIS,
	models.ProductTypeCNC:      models.BrokerProductTypeCNC,
	models.ProductTypeDelivery: models.BrokerProductTypeCNC,
	models.ProductTypeNRML:     models.BrokerProductTypeNRML,
	models.ProductTypeMargin:   models.BrokerProductTypeNRML,
}

var productFromBroker = map[models.BrokerProductType]models.ProductType{
	models.BrokerProductTypeMIS:  models.ProductTypeMIS,
	models.BrokerProductTypeCNC:  models.ProductTypeCNC,
	models.BrokerProductTypeNRML: models.ProductTypeNRML,
}

// Side and validity codes are identical on both sides; the tables only gate
// unknown values onto the defaults.
var sideToBroker = map[models.OrderSide]models.OrderSide{
	models.OrderSideBuy:  models.OrderSideBuy,
	models.OrderSideSell: models.OrderSideSell,
}

var validityToBroker = map[models.Validity]models.Validity{
	models.ValidityDay: models.ValidityDay,
	models.ValidityIOC: models.ValidityIOC,
	models.ValidityGTC: models.ValidityGTC,
}
