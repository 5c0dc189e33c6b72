package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servicehub/database/gateway"
	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a client or provider account and returns a session token.
// Admin accounts cannot be self-registered.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, ValidationError{Field: "username", Message: "is required"}
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	u := models.User{
		Username:    req.Username,
		UserType:    req.UserType,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       strings.TrimSpace(req.Email),
	}
	switch req.UserType {
	case models.UserTypeClient:
	case models.UserTypeProvider:
		u.ServiceType = strings.TrimSpace(req.ServiceType)
		if u.ServiceType == "" {
			return nil, ValidationError{Field: "serviceType", Message: "is required for providers"}
		}
		rate, err := normalizeRate(req.Rate)
		if err != nil {
			return nil, err
		}
		u.Rate = rate
		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		u.IsAvailable = &available
	default:
		return nil, ValidationError{Field: "userType", Message: "must be client or provider"}
	}

	existing, err := s.Gateway.QueryByField(ctx, gateway.CollectionUsers, "username", u.Username)
	if err != nil {
		s.Logger.Error("Register: availability check failed", zap.String("username", u.Username), zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again: %w", err)
	}
	u.PasswordHash = string(hashed)
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	rec, err := gateway.Encode(u)
	if err != nil {
		return nil, err
	}
	delete(rec, gateway.IDField)
	id, err := s.Gateway.Insert(ctx, gateway.CollectionUsers, rec)
	if err != nil {
		s.Logger.Error("Register: failed to create user", zap.String("username", u.Username), zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again: %w", err)
	}
	u.ID = id
	s.Logger.Info("user registered", zap.String("userId", id), zap.String("userType", u.UserType))

	return s.issue(u)
}

func (s *DefaultUserService) issue(u models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.Actor(), s.TokenTTL)
	if err != nil {
		s.Logger.Error("failed to generate auth token", zap.String("userId", u.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	return &AuthResponse{ID: u.ID, Token: token, Username: u.Username, UserType: u.UserType}, nil
}
