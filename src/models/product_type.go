package models

// ProductType is the platform's product code. INTRADAY, DELIVERY and MARGIN
// are aliases that collapse to MIS, CNC and NRML on the way to the broker.
type ProductType string

const (
	ProductTypeMIS      ProductType = "MIS"
	ProductTypeIntraday ProductType = "INTRADAY"
	ProductTypeCNC      ProductType = "CNC"
	ProductTypeDelivery ProductType = "DELIVERY"
	ProductTypeNRML     ProductType = "NRML"
	ProductTypeMargin   ProductType = "MARGIN"
)

// BrokerProductType is the InvestRight product code.
type BrokerProductType string

const (
	BrokerProductTypeMIS  BrokerProductType = "MIS"
	BrokerProductTypeCNC  BrokerProductType = "CNC"
	BrokerProductTypeNRML BrokerProductType = "NRML"
)
