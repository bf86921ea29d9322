package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/ports"
)

// AccesorioService runs the equipment checklist.
type AccesorioService struct {
	repo   ports.AccesorioRepository
	logger zerolog.Logger
}

func NewAccesorioService(repo ports.AccesorioRepository, logger zerolog.Logger) *AccesorioService {
	return &AccesorioService{repo: repo, logger: logger}
}

// AccesorioChange carries optional checklist edits; nil means unchanged.
type AccesorioChange struct {
	Estado   *domain.AccesorioEstado `json:"estado,omitempty"`
	Contados *int                    `json:"contados,omitempty"`
	Obs      *string                 `json:"obs,omitempty"`
}

// List returns the checklist, seeding the default items on first use.
func (s *AccesorioService) List(ctx context.Context) ([]domain.Accesorio, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	if err := s.repo.Seed(ctx, domain.DefaultAccesorios()); err != nil {
		return nil, err
	}
	s.logger.Info().Int("count", len(domain.DefaultAccesorios())).Msg("accesorios seeded")
	return s.repo.List(ctx)
}

// SetEstado changes an item's condition.
func (s *AccesorioService) SetEstado(ctx context.Context, id string, estado domain.AccesorioEstado) (*domain.Accesorio, error) {
	return s.Apply(ctx, id, AccesorioChange{Estado: &estado})
}

// SetContados records the counted units, clamped at zero.
func (s *AccesorioService) SetContados(ctx context.Context, id string, contados int) (*domain.Accesorio, error) {
	return s.Apply(ctx, id, AccesorioChange{Contados: &contados})
}

// SetObservacion replaces the free-text note.
func (s *AccesorioService) SetObservacion(ctx context.Context, id, obs string) (*domain.Accesorio, error) {
	return s.Apply(ctx, id, AccesorioChange{Obs: &obs})
}

// Apply performs all edits of a change at once.
func (s *AccesorioService) Apply(ctx context.Context, id string, ch AccesorioChange) (*domain.Accesorio, error) {
	if ch.Estado != nil && !ch.Estado.IsValid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, *ch.Estado)
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ch.Estado != nil {
		item.Estado = *ch.Estado
	}
	if ch.Contados != nil {
		item.Contados = max(0, *ch.Contados)
	}
	if ch.Obs != nil {
		item.Obs = *ch.Obs
	}

	updated, err := s.repo.Update(ctx, *item)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("accesorio_id", id).Str("estado", string(updated.Estado)).Int("contados", updated.Contados).Msg("accesorio updated")
	return updated, nil
}

// Summary aggregates the checklist.
func (s *AccesorioService) Summary(ctx context.Context) (domain.AccesorioSummary, error) {
	items, err := s.List(ctx)
	if err != nil {
		return domain.AccesorioSummary{}, err
	}
	return domain.SummarizeAccesorios(items), nil
}
