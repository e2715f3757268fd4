package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidTitle    = errors.New("invalid title")
	ErrInvalidType     = errors.New("invalid category type")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || len(trimmed) > 100 {
		return ErrInvalidTitle
	}
	return nil
}

func ValidateCategoryType(categoryType string) error {
	if categoryType != "Income" && categoryType != "Expense" {
		return ErrInvalidType
	}
	return nil
}
