package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"riskgate/internal/platform/metrics"
	"riskgate/pkg/requestcontext"
)

// Observe logs one line per request and feeds the request counter. Route
// patterns come from chi after routing, so /workflow/cases/{caseID}/reassign
// counts as one label, not one per case.
func Observe(m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			ctx := r.Context()
			pattern := r.URL.Path
			if rctx := chi.RouteContext(ctx); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					pattern = p
				}
			}

			m.IncrementHTTPRequests(pattern, strconv.Itoa(ww.Status()))
			logger.InfoContext(ctx, "request served",
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"route", pattern,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
