package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/linkmetrics/internal/handlers"
)

// RequestMeta captures the client IP and user-agent into the request context
// so the redirect handler can attach them to click events.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
		}

		ctx = huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta))

		next(ctx)
	}
}

// clientIP resolves the originating client address. Proxy headers win over
// the connection's remote address: X-Forwarded-For holds the original client
// as its first entry.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}

	return addr
}
