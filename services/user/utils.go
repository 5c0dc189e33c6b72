package user

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// VerifyPasswordComplexity requires at least 8 characters with a letter and a number.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return ValidationError{Field: "password", Message: "must be at least 8 characters long"}
	}
	if !hasLetter.MatchString(pw) {
		return ValidationError{Field: "password", Message: "must include at least one letter"}
	}
	if !hasNumber.MatchString(pw) {
		return ValidationError{Field: "password", Message: "must include at least one number"}
	}
	return nil
}

// normalizeRate parses a provider rate and returns it with two decimals.
func normalizeRate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ValidationError{Field: "rate", Message: "is required for providers"}
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return "", ValidationError{Field: "rate", Message: "must be a number"}
	}
	if !rate.IsPositive() {
		return "", ValidationError{Field: "rate", Message: "must be greater than zero"}
	}
	return rate.StringFixed(2), nil
}
