package ports

import (
	"context"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

// SocioDirectory is the remote store of member records.
// Create assigns the id, registration date and initial status.
type SocioDirectory interface {
	Create(ctx context.Context, s domain.Socio) (string, error)
	// GetAll returns every member, newest registration first.
	GetAll(ctx context.Context) ([]domain.Socio, error)
	Update(ctx context.Context, id string, patch domain.SocioPatch) error
	Delete(ctx context.Context, id string) error
}
