// README: Route quote cache backed by Redis.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"overlook/internal/maps"
)

// QuoteStore caches directions-provider quotes. Provider calls are the
// dominant latency in fare computation, and the same origin/destination pair
// is often quoted repeatedly while a rider tweaks a booking. Entries are
// keyed down to the departure hour so time-of-day routing stays honest.
type QuoteStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewQuoteStore(redis *redis.Client, ttl time.Duration) *QuoteStore {
	return &QuoteStore{redis: redis, ttl: ttl}
}

// Get returns a cached quote if present. Cache errors count as misses.
func (s *QuoteStore) Get(ctx context.Context, origin, destination string, departAt time.Time) (maps.RouteQuote, bool) {
	raw, err := s.redis.Get(ctx, quoteKey(origin, destination, departAt)).Bytes()
	if err != nil {
		return maps.RouteQuote{}, false
	}
	var q maps.RouteQuote
	if err := json.Unmarshal(raw, &q); err != nil {
		return maps.RouteQuote{}, false
	}
	return q, true
}

// Put stores a quote, best effort.
func (s *QuoteStore) Put(ctx context.Context, origin, destination string, departAt time.Time, q maps.RouteQuote) {
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	_ = s.redis.Set(ctx, quoteKey(origin, destination, departAt), raw, s.ttl).Err()
}

func quoteKey(origin, destination string, departAt time.Time) string {
	return fmt.Sprintf("pricing:quote:%s|%s|%d",
		strings.ToLower(origin),
		strings.ToLower(destination),
		departAt.Truncate(time.Hour).Unix(),
	)
}
