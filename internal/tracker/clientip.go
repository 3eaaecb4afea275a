package tracker

import (
	"net"
	"strings"
)

// SentinelIP is recorded when no header or connection attribute yields a
// usable client address.
const SentinelIP = "0.0.0.0"

// ClientIP extracts the client IP from request metadata, checking sources
// in priority order: the direct override header, forwarded-for hops, the
// CDN header, the reverse-proxy header, and finally the raw connection
// address. Private and loopback values are skipped while a later source may
// still supply a public one; if only private/loopback candidates exist the
// first of those wins, and with no candidates at all the sentinel address
// is returned.
func ClientIP(meta RequestMeta) string {
	var candidates []string

	if meta.ClientIPHeader != "" {
		candidates = append(candidates, strings.TrimSpace(meta.ClientIPHeader))
	}

	for _, hop := range strings.Split(meta.ForwardedFor, ",") {
		if hop = strings.TrimSpace(hop); hop != "" {
			candidates = append(candidates, hop)
		}
	}

	if meta.CFConnectingIP != "" {
		candidates = append(candidates, strings.TrimSpace(meta.CFConnectingIP))
	}

	if meta.RealIP != "" {
		candidates = append(candidates, strings.TrimSpace(meta.RealIP))
	}

	if meta.RemoteAddr != "" {
		candidates = append(candidates, stripPort(meta.RemoteAddr))
	}

	fallback := ""

	for _, c := range candidates {
		ip := net.ParseIP(c)
		if ip == nil {
			continue
		}

		if ip.IsLoopback() || ip.IsPrivate() {
			if fallback == "" {
				fallback = c
			}

			continue
		}

		return c
	}

	if fallback != "" {
		return fallback
	}

	return SentinelIP
}

func stripPort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}
