package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/core/services"
	"github.com/receiptly/receipt_management_app/internal/platform/config"
	"github.com/receiptly/receipt_management_app/internal/utils"
)

// --- Test Suite ---
type AuthServiceTestSuite struct {
	suite.Suite
	cfg     *config.Config
	service portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		AdminPassword:     "correct horse battery staple",
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "rma_backend_test",
	}
	svc, err := services.NewAuthService(suite.cfg)
	suite.Require().NoError(err)
	suite.service = svc
}

// --- Test Cases ---

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()

	token, err := suite.service.Login(ctx, "correct horse battery staple")

	suite.Require().NoError(err)
	suite.NotEmpty(token)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("admin", claims.Subject)
	suite.Equal(suite.cfg.JWTIssuer, claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()

	token, err := suite.service.Login(ctx, "not the password")

	suite.Require().Error(err)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_DisabledWithoutPassword() {
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
	}
	svc, err := services.NewAuthService(cfg)
	suite.Require().NoError(err)

	token, err := svc.Login(context.Background(), "anything")

	suite.Require().Error(err)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
