package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/match-relevance/internal/platform/id"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID propagates the inbound X-Request-Id header, generating a fresh
// identifier when the client did not supply one. The resolved value is stored
// on the request context and echoed back on the response.
func RequestID(generator id.Generator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" && generator != nil {
			generated, err := generator.NewID()
			if err == nil {
				requestID = generated
			}
		}

		if requestID != "" {
			w.Header().Set(requestIDHeader, requestID)
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey{}).(string); ok {
		return value
	}

	return ""
}
