// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; services read them without
// importing net/http.
//
// Usage in services:
//
//	auditorID := requestcontext.AuditorID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithAuditorID(ctx, auditorID)
package requestcontext

import (
	"context"
	"time"

	id "riskgate/pkg/domain"
)

type (
	auditorIDKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyAuditorID   = auditorIDKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// AuditorID retrieves the authenticated auditor ID from the context.
// Returns the zero value if not set.
func AuditorID(ctx context.Context) id.AuditorID {
	if auditorID, ok := ctx.Value(ContextKeyAuditorID).(id.AuditorID); ok {
		return auditorID
	}
	return id.AuditorID{}
}

// WithAuditorID injects an auditor ID into the context.
func WithAuditorID(ctx context.Context, auditorID id.AuditorID) context.Context {
	return context.WithValue(ctx, ContextKeyAuditorID, auditorID)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context. Falls back to
// time.Now() for non-HTTP contexts such as workers and tests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
