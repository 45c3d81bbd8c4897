package services

import (
	"context"
	"net/http"
	"strings"

	"storefront-service/models"
	"storefront-service/pkg/auth"
	"storefront-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials is the single configured back-office account.
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// AuthService checks the admin credential and issues tokens.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError)
}

type authServiceImpl struct {
	creds  AdminCredentials
	tokens *auth.Tokens
	logger *zap.Logger
}

func NewAuthService(creds AdminCredentials, tokens *auth.Tokens, logger *zap.Logger) AuthService {
	return &authServiceImpl{creds: creds, tokens: tokens, logger: logger}
}

func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError) {
	log := logger.For(ctx, s.logger)
	invalid := &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}

	if s.creds.Email == "" || s.creds.PasswordHash == "" {
		log.Warn("Admin login attempted but no admin credential is configured")
		return nil, invalid
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), s.creds.Email) {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Admin login failed", zap.String("email", req.Email))
		return nil, invalid
	}

	token, expiresAt, err := s.tokens.Issue(s.creds.Email, auth.TypeAdmin)
	if err != nil {
		log.Error("Failed to issue admin token", zap.Error(err))
		return nil, internal("Failed to issue token")
	}
	log.Info("Admin logged in", zap.String("email", s.creds.Email))
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
