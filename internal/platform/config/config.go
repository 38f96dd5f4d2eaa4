package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	PostgresDSN   string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration
	SeedPassword  string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("RISKGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default; must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := 30 * time.Minute
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			tokenTTL = d
		}
	}

	return Server{
		Addr:          addr,
		PostgresDSN:   os.Getenv("RISKGATE_POSTGRES_DSN"),
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     "riskgate",
		TokenTTL:      tokenTTL,
		// Empty disables auditor seeding; local runs opt in explicitly.
		SeedPassword: os.Getenv("RISKGATE_SEED_PASSWORD"),
	}
}
