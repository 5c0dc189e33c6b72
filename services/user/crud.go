package user

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"servicehub/database/gateway"
	"servicehub/models"

	"go.uber.org/zap"
)

func (s *DefaultUserService) findUser(ctx context.Context, field, value string) (*models.User, error) {
	records, err := s.Gateway.QueryByField(ctx, gateway.CollectionUsers, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by %s: %w", field, err)
	}
	if len(records) == 0 {
		return nil, ErrUserNotFound
	}
	var u models.User
	if err := gateway.Decode(records[0], &u); err != nil {
		s.Logger.Error("malformed user record", zap.String(field, value), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, gateway.IDField, id)
}

func (s *DefaultUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, "username", strings.TrimSpace(username))
}

// ListProviders returns the providers offering serviceType, or every
// provider when serviceType is empty. Suspended providers are left out.
func (s *DefaultUserService) ListProviders(ctx context.Context, serviceType string) ([]models.User, error) {
	field, value := "userType", models.UserTypeProvider
	if serviceType = strings.TrimSpace(serviceType); serviceType != "" {
		field, value = "serviceType", serviceType
	}
	records, err := s.Gateway.QueryByField(ctx, gateway.CollectionUsers, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	providers := make([]models.User, 0, len(records))
	for _, rec := range records {
		var u models.User
		if err := gateway.Decode(rec, &u); err != nil {
			s.Logger.Warn("skipping malformed user record", zap.Any("id", rec[gateway.IDField]), zap.Error(err))
			continue
		}
		if u.UserType != models.UserTypeProvider || u.Suspended {
			continue
		}
		providers = append(providers, u)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].Username < providers[j].Username })
	return providers, nil
}

func (s *DefaultUserService) GetService(ctx context.Context, id string) (*models.Service, error) {
	records, err := s.Gateway.QueryByField(ctx, gateway.CollectionServices, gateway.IDField, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrServiceNotFound
	}
	var svc models.Service
	if err := gateway.Decode(records[0], &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}
