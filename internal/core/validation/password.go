package validation

import (
	"strings"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

const minPasswordLength = 6

// SignUp is the staff registration form.
type SignUp struct {
	FirstName       string `json:"firstName"       validate:"notblank"`
	LastName        string `json:"lastName"        validate:"notblank"`
	Email           string `json:"email"           validate:"notblank,looseemail"`
	Password        string `json:"password"        validate:"notblank"`
	ConfirmPassword string `json:"confirmPassword" validate:"notblank"`
}

// CheckSignUp returns the first blocking problem with a registration form,
// in the order staff see them: missing fields, mismatch, weak password.
func CheckSignUp(s SignUp) error {
	if strings.TrimSpace(s.FirstName) == "" || strings.TrimSpace(s.LastName) == "" ||
		strings.TrimSpace(s.Email) == "" || s.Password == "" || s.ConfirmPassword == "" {
		return domain.ErrValidation
	}
	if s.Password != s.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if !emailPattern.MatchString(s.Email) {
		return domain.ErrValidation
	}
	if !StrongPassword(s.Password) {
		return domain.ErrWeakPassword
	}
	return nil
}

// StrongPassword requires ASCII letters and digits only, at least six of them,
// with one lowercase letter, one uppercase letter and one digit.
func StrongPassword(p string) bool {
	if len(p) < minPasswordLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return lower && upper && digit
}
