package auth

import (
	"context"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/internal/service"
	"hackboard/pkg/errors"
	"hackboard/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// Service validates platform-issued bearer tokens. Session issuance lives in
// the surrounding platform; the engine only verifies what it is handed.
type Service struct {
	secret []byte
	logger *logger.Logger
}

// NewService creates a new auth service
func NewService(secret string, logger *logger.Logger) service.AuthService {
	return &Service{
		secret: []byte(secret),
		logger: logger,
	}
}

type tokenClaims struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"team_id,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken validates an HS256 token and returns its claims.
func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.WithError(err).Debug("Token validation failed")
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, errors.NewAuthenticationError("Invalid token claims")
	}

	if claims.Subject == "" {
		return nil, errors.NewAuthenticationError("Token is missing a subject")
	}

	return &domain.AuthClaims{
		Sub:    claims.Subject,
		Name:   claims.Name,
		Role:   claims.Role,
		TeamID: claims.TeamID,
	}, nil
}
