// Package cache stores JSON-encoded report results behind a small backend
// interface with an explicit TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"fleet-analytics-service/internal/metrics"
)

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

type Store struct {
	backend Backend
	ttl     time.Duration
	log     zerolog.Logger
	group   singleflight.Group
}

func NewStore(backend Backend, ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{backend: backend, ttl: ttl, log: log}
}

func (s *Store) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := s.backend.DeletePrefix(ctx, prefix); err != nil {
			s.log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
		}
	}
}

// GetOrLoad returns the cached value for key, or runs load once per key across
// concurrent callers and caches its result. Backend failures degrade to a miss.
// Every caller receives its own decoded copy.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	data, found, err := s.backend.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheRequests.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	case found:
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			return value, nil
		}
		s.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	// The shared load outlives any single caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	shared, err, _ := s.group.Do(key, func() (interface{}, error) {
		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode cache entry %s: %w", key, err)
		}
		if err := s.backend.Set(loadCtx, key, encoded, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		return encoded, nil
	})
	if err != nil {
		return zero, err
	}

	var value T
	if err := json.Unmarshal(shared.([]byte), &value); err != nil {
		return zero, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return value, nil
}
