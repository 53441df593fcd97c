package symbols

import (
	"context"
	"fmt"
)

// MapResolver resolves symbols from in-memory tables. An empty resolver never
// matches, which leaves every symbol untranslated.
type MapResolver struct {
	toBroker   map[string]string
	toPlatform map[string]string
}

func NewMapResolver() *MapResolver {
	return &MapResolver{
		toBroker:   make(map[string]string),
		toPlatform: make(map[string]string),
	}
}

// Add registers the mapping between a platform symbol and its broker-native
// counterpart on the given exchange.
func (r *MapResolver) Add(exchange, symbol, brokerSymbol string) {
	r.toBroker[key(exchange, symbol)] = brokerSymbol
	r.toPlatform[key(exchange, brokerSymbol)] = symbol
}

func (r *MapResolver) ToBroker(ctx context.Context, symbol, exchange string) (string, error) {
	return r.toBroker[key(exchange, symbol)], nil
}

func (r *MapResolver) ToPlatform(ctx context.Context, brokerSymbol, exchange string) (string, error) {
	return r.toPlatform[key(exchange, brokerSymbol)], nil
}

func key(exchange, symbol string) string {
	return fmt.Sprintf("%s:%s", exchange, symbol)
}
