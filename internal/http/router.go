// Package httpapi assembles the public HTTP surface. Handlers stay with
// their feature packages; this package only mounts them and applies the
// shared middleware chain.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"riskgate/internal/platform/metrics"
	"riskgate/internal/platform/middleware"
	"riskgate/pkg/platform/httputil"
)

// Registrar mounts feature routes on a router group.
type Registrar interface {
	RegisterPublic(r chi.Router)
}

// ProtectedRegistrar mounts routes behind auditor authentication.
type ProtectedRegistrar interface {
	RegisterProtected(r chi.Router)
}

// NewRouter builds the full route tree. Everything under /api/v1 carries
// request metadata; the protected group additionally requires a bearer token.
func NewRouter(validator middleware.JWTValidator, m *metrics.Metrics, logger *slog.Logger, public []Registrar, protected []ProtectedRegistrar) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.RequestMetadata)
		api.Use(middleware.Observe(m, logger))

		for _, reg := range public {
			reg.RegisterPublic(api)
		}

		api.Group(func(auth chi.Router) {
			auth.Use(middleware.RequireAuth(validator, logger))
			for _, reg := range protected {
				reg.RegisterProtected(auth)
			}
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
