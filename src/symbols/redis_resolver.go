package symbols

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisResolver resolves symbols from Redis hashes maintained by the symbol
// import job: symbols:br:<exchange> maps platform symbol to broker symbol and
// symbols:oa:<exchange> maps the other way.
type RedisResolver struct {
	rdb *redis.Client
}

func NewRedisResolver(rdb *redis.Client) *RedisResolver {
	return &RedisResolver{rdb: rdb}
}

func (r *RedisResolver) ToBroker(ctx context.Context, symbol, exchange string) (string, error) {
	return r.lookup(ctx, fmt.Sprintf("symbols:br:%s", exchange), symbol)
}

func (r *RedisResolver) ToPlatform(ctx context.Context, brokerSymbol, exchange string) (string, error) {
	return r.lookup(ctx, fmt.Sprintf("symbols:oa:%s", exchange), brokerSymbol)
}

func (r *RedisResolver) lookup(ctx context.Context, hashKey, field string) (string, error) {
	val, err := r.rdb.HGet(ctx, hashKey, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("RedisResolver: failed to look up %s in %s: %w", field, hashKey, err)
	}

	return val, nil
}
