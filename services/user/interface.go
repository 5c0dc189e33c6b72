package user

import (
	"context"
	"time"

	"servicehub/database/gateway"
	"servicehub/models"

	"go.uber.org/zap"
)

type UserService interface {
	// Accounts
	Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error)
	Authenticate(ctx context.Context, username, password string) (*AuthResponse, error)

	// Lookups
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListProviders(ctx context.Context, serviceType string) ([]models.User, error)

	// Catalogue
	GetService(ctx context.Context, id string) (*models.Service, error)
}

// DefaultUserService stores users and the services catalogue through the
// persistence gateway.
type DefaultUserService struct {
	Gateway  gateway.Gateway
	TokenTTL time.Duration
	Logger   *zap.Logger
}

func NewDefaultUserService(gw gateway.Gateway, tokenTTL time.Duration, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{Gateway: gw, TokenTTL: tokenTTL, Logger: logger}
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}
