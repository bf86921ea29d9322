package ports

import (
	"context"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/validation"
)

type AuthService interface {
	Register(ctx context.Context, form validation.SignUp) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}
