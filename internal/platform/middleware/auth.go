package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "riskgate/pkg/domain"
	"riskgate/pkg/requestcontext"
)

// JWTValidator defines the interface for validating bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	AuditorID string
}

// RequireAuth rejects requests without a valid bearer token and injects the
// authenticated auditor ID into the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "

			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				unauthorized(w, "Missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			auditorID, err := id.ParseAuditorID(claims.AuditorID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed subject",
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Invalid token claims")
				return
			}

			ctx = requestcontext.WithAuditorID(ctx, auditorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
