package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"riskgate/internal/platform/middleware"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
)

// Claims represents the JWT claims for auditor access tokens.
type Claims struct {
	AuditorID string `json:"auditor_id"`
	Level     string `json:"level"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation for auditor sessions.
type JWTService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewJWTService(signingKey string, issuer string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// GenerateAccessToken issues an HS256 token for an authenticated auditor.
func (s *JWTService) GenerateAccessToken(auditorID id.AuditorID, level id.AuditLevel) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AuditorID: auditorID.String(),
		Level:     level.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   auditorID.String(),
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// ValidateToken parses and verifies a token, returning the middleware-facing
// claims used by RequireAuth.
func (s *JWTService) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return &middleware.JWTClaims{AuditorID: claims.AuditorID}, nil
}
