package services

import (
	"context"
	"fmt"
	"time"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/middleware"
	"github.com/receiptly/receipt_management_app/internal/platform/config"
	"github.com/receiptly/receipt_management_app/internal/utils"
)

// authSubject is the JWT subject for the single admin identity.
const authSubject = "admin"

// authService implements single-admin authentication. The admin password is
// hashed once at startup; the plaintext is never kept.
type authService struct {
	passwordHash   string
	jwtSecret      string
	expiryDuration time.Duration
	issuer         string
}

// NewAuthService creates the auth service from the loaded configuration.
// When no admin password is configured, login always fails.
func NewAuthService(cfg *config.Config) (portssvc.AuthSvcFacade, error) {
	svc := &authService{
		jwtSecret:      cfg.JWTSecret,
		expiryDuration: cfg.JWTExpiryDuration,
		issuer:         cfg.JWTIssuer,
	}
	if cfg.AdminPassword != "" {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		svc.passwordHash = hash
	}
	return svc, nil
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the admin password and returns a signed bearer token.
func (s *authService) Login(ctx context.Context, password string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.passwordHash == "" {
		logger.Warn("Login attempted but no admin password is configured")
		return "", fmt.Errorf("%w: login is disabled", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(password, s.passwordHash) {
		logger.Warn("Login failed: incorrect password")
		return "", fmt.Errorf("%w: incorrect password", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(authSubject, s.jwtSecret, s.expiryDuration, s.issuer)
	if err != nil {
		logger.Error("Failed to sign token", "error", err)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
