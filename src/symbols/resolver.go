// Package symbols provides bidirectional lookup between the platform's
// symbol+exchange pair and the broker-native one.
package symbols

import "context"

// Resolver translates symbols between the two naming schemes. A miss is
// reported as an empty string with a nil error; errors are reserved for
// lookup-store failures.
type Resolver interface {
	ToBroker(ctx context.Context, symbol, exchange string) (string, error)
	ToPlatform(ctx context.Context, brokerSymbol, exchange string) (string, error)
}
