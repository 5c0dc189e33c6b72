package user

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate checks the password against the stored hash and issues a
// session token. Suspended accounts are rejected.
func (s *DefaultUserService) Authenticate(ctx context.Context, username, password string) (*AuthResponse, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Suspended {
		s.Logger.Warn("Authenticate: suspended account", zap.String("userId", u.ID))
		return nil, ErrSuspended
	}
	return s.issue(*u)
}
