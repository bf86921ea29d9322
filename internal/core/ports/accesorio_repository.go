package ports

import (
	"context"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

// AccesorioRepository persists the equipment checklist.
type AccesorioRepository interface {
	List(ctx context.Context) ([]domain.Accesorio, error)
	// Seed stores the items whose nombre is not stored yet. Repeated or
	// concurrent calls leave one document per nombre.
	Seed(ctx context.Context, items []domain.Accesorio) error
	// Update replaces the mutable fields of an item and returns the stored result.
	Update(ctx context.Context, item domain.Accesorio) (*domain.Accesorio, error)
	FindByID(ctx context.Context, id string) (*domain.Accesorio, error)
}
