// Package middleware holds huma middlewares for the API surface.
package middleware

import (
	"net"

	"github.com/Ghulam-Abbas-65/QR/internal/tracker"
	"github.com/danielgtaylor/huma/v2"
)

// RequestMeta captures the raw request attributes the tracking pipeline
// needs into the request context. Header precedence is decided downstream
// by the tracker, not here.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := tracker.RequestMeta{
			RemoteAddr:     remoteAddr(ctx),
			ClientIPHeader: ctx.Header("X-Client-IP"),
			ForwardedFor:   ctx.Header("X-Forwarded-For"),
			CFConnectingIP: ctx.Header("CF-Connecting-IP"),
			RealIP:         ctx.Header("X-Real-IP"),
			UserAgent:      ctx.Header("User-Agent"),
			Referrer:       ctx.Header("Referer"),
		}

		newCtx := tracker.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

// remoteAddr extracts the connection address. Host carries the remote addr
// in the huma context; strip the port when present.
func remoteAddr(ctx huma.Context) string {
	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
