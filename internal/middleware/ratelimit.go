package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"

	"github.com/Ghulam-Abbas-65/QR/internal/ratelimit"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware applying per-endpoint rate limits.
// Endpoints configure limits (or opt out) via operation metadata under
// ratelimit.MetadataKey; everything else gets the limiter's defaults.
func RateLimiter(
	api huma.API, limiter *ratelimit.Limiter, logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		var limits []ratelimit.LimitConfig

		if cfg := ratelimit.GetEndpointConfig(ctx); cfg != nil {
			if cfg.Disabled {
				next(ctx)

				return
			}

			limits = cfg.Limits
		}

		route := operationPath(ctx)

		allowed, exceeded, err := limiter.Allow(ctx.Context(), clientKey(ctx), route, limits)
		if err != nil {
			logger.Error("rate limit check failed", zap.String("route", route), zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			logger.Warn("rate limit exceeded",
				zap.String("route", route),
				zap.String("method", ctx.Method()),
				zap.Int64("count", exceeded.Count),
				zap.Int64("max", exceeded.Config.Max),
				zap.Duration("window", exceeded.Config.Window),
			)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next(ctx)
	}
}

// operationPath keys counters by route template so all requests matching
// the same pattern share a bucket per client.
func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

// clientKey hashes client IP and User-Agent into the rate limit identity.
func clientKey(ctx huma.Context) string {
	ip := clientIP(ctx)
	ua := ctx.Header("User-Agent")

	hash := sha256.Sum256([]byte(ip + "|" + ua))

	return hex.EncodeToString(hash[:])
}

// clientIP extracts the client IP for rate limiting, considering proxies.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
