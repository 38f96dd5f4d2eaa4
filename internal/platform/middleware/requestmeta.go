package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"riskgate/pkg/requestcontext"
)

// RequestMetadata stamps each request with a request ID and a request-scoped
// time. Downstream code reads both through pkg/requestcontext so a single
// request observes one consistent clock value.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
