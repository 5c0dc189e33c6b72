package utils

import (
	"errors"
	"time"

	"servicehub/config"
	"servicehub/models"

	"github.com/golang-jwt/jwt"
)

const devSecret = "servicehub-dev-secret"

var ErrInvalidToken = errors.New("invalid token")

// secretKey reads the signing secret from config. Outside production an
// unset secret falls back to a fixed development value.
func secretKey() ([]byte, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		if config.IsProduction() {
			return nil, errors.New("JWT_SECRET is not configured")
		}
		secret = devSecret
	}
	return []byte(secret), nil
}

// GenerateToken creates a signed JWT carrying the actor's id, username and
// user type. The token expires after ttl.
func GenerateToken(actor models.Actor, ttl time.Duration) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      actor.ID,
		"username": actor.Username,
		"role":     actor.UserType,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ParseActor validates tokenString and returns the identity it carries.
func ParseActor(tokenString string) (models.Actor, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Actor{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return models.Actor{}, errors.New("token does not carry a subject and role")
	}
	username, _ := claims["username"].(string)
	return models.Actor{ID: sub, Username: username, UserType: role}, nil
}
