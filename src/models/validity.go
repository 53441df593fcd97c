package models

// Validity is the order's time in force. The platform and broker codes are
// identical.
type Validity string

const (
	ValidityDay Validity = "DAY"
	ValidityIOC Validity = "IOC"
	ValidityGTC Validity = "GTC"
)
