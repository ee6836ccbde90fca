package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HeaderCorrelationID carries the request correlation identifier.
const HeaderCorrelationID = "X-Correlation-ID"

type correlationIDKey struct{}

var correlationKey = correlationIDKey{}

// ContextWithCorrelationID binds a correlation identifier to ctx.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// CorrelationIDFromContext extracts the correlation identifier from context, if present.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if value := ctx.Value(correlationKey); value != nil {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// CorrelationID stamps every outgoing request with a correlation identifier,
// reusing the one bound to the request context when present.
func CorrelationID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if strings.TrimSpace(req.Header.Get(HeaderCorrelationID)) != "" {
				return next.RoundTrip(req)
			}

			id := CorrelationIDFromContext(req.Context())
			if id == "" {
				id = uuid.NewString()
			}

			clone := req.Clone(ContextWithCorrelationID(req.Context(), id))
			clone.Header.Set(HeaderCorrelationID, id)
			return next.RoundTrip(clone)
		})
	}
}
