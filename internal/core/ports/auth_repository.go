package ports

import (
	"context"
	"time"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

// AuthRepository defines persistence for staff accounts and their profile.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateProfile merges the given profile fields into the user document.
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ProfileUpdate carries optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// ResetTokenStore keeps short-lived password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume returns the user id for token and deletes it. Missing tokens
	// yield domain.ErrInvalidResetToken.
	Consume(ctx context.Context, token string) (string, error)
}
