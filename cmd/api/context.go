// cmd/api/context.go
package main

import (
	"context"
	"net/http"
)

type contextKey string

const requestIDContextKey = contextKey("request_id")

// contextSetRequestID returns a copy of r carrying the request id.
func contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// contextGetRequestID returns the request id, or "" outside the requestID
// middleware.
func contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}
