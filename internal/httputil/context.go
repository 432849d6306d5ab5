package httputil

import (
	"context"
	"net/http"
)

type requestIDKey struct{}

// WithRequestID returns r with requestID attached to its context
func WithRequestID(r *http.Request, requestID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))
}

// GetRequestID returns the ID set by the request logger, or "" outside it
func GetRequestID(r *http.Request) string {
	return RequestIDFrom(r.Context())
}

// RequestIDFrom reads the request ID from a context derived from the request
func RequestIDFrom(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}
