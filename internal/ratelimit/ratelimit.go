// Package ratelimit enforces per-client request limits with per-endpoint
// configuration carried in huma operation metadata.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Store is the counter backend. Record counts a request for the key and
// returns how many requests the key has seen in the current window,
// pruning expired entries.
type Store interface {
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// LimitConfig is one window/max pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// MetadataKey is the huma operation metadata key holding an EndpointConfig.
const MetadataKey = "rateLimit"

// EndpointConfig is a per-endpoint override. The redirect endpoint runs
// with relaxed limits; create endpoints run strict.
type EndpointConfig struct {
	// Limits replaces the default limits for this endpoint.
	Limits []LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// GetEndpointConfig extracts the EndpointConfig from operation metadata.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// LimitExceeded describes which limit a rejected request hit.
type LimitExceeded struct {
	Config LimitConfig
	Count  int64
}

// Limiter checks a client key against a set of limits.
type Limiter struct {
	store    Store
	defaults []LimitConfig
}

// NewLimiter creates a limiter with default limits applied to endpoints
// that configure none of their own.
func NewLimiter(store Store, defaults []LimitConfig) *Limiter {
	return &Limiter{
		store:    store,
		defaults: defaults,
	}
}

// Allow records the request under every applicable limit and reports
// whether all of them hold. Each client/route/window combination tracks
// independently.
func (l *Limiter) Allow(
	ctx context.Context, clientKey, route string, limits []LimitConfig,
) (bool, *LimitExceeded, error) {
	if len(limits) == 0 {
		limits = l.defaults
	}

	for _, limit := range limits {
		key := fmt.Sprintf("%s:%s:%d", clientKey, route, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, key, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			return false, &LimitExceeded{Config: limit, Count: count}, nil
		}
	}

	return true, nil, nil
}
