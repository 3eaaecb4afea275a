package tracker

import "context"

// RequestMeta carries the raw request attributes the tracking pipeline
// derives analytics from. The middleware populates it; nothing downstream
// touches the HTTP request directly.
type RequestMeta struct {
	RemoteAddr     string
	ClientIPHeader string // X-Client-IP
	ForwardedFor   string // X-Forwarded-For
	CFConnectingIP string // CF-Connecting-IP
	RealIP         string // X-Real-IP
	UserAgent      string
	Referrer       string
}

type requestMetaKey struct{}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
