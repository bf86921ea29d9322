package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/ports"
	"github.com/gimnasio/gym-system/internal/core/validation"
	"github.com/gimnasio/gym-system/internal/pkg/metrics"
)

// SocioOverview is the roster summary shown on the members screen.
type SocioOverview struct {
	domain.Stats
	PorTier map[domain.MembershipTier]int `json:"porTier"`
}

// CreateResult reports a new member, or the one an idempotent replay points to.
type CreateResult struct {
	Result
	AlreadyExisted bool
}

// SocioService runs the member screen flows for a logged-in staff user:
// validate, mutate through the session roster, notify.
type SocioService struct {
	sessions  *Sessions
	validator *validation.SocioValidator
	queue     ports.NotificationQueue
	idem      ports.IdempotencyStore
	logger    zerolog.Logger
}

func NewSocioService(
	sessions *Sessions,
	validator *validation.SocioValidator,
	queue ports.NotificationQueue,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *SocioService {
	return &SocioService{
		sessions:  sessions,
		validator: validator,
		queue:     queue,
		idem:      idem,
		logger:    logger,
	}
}

// roster returns the user's roster, loading it on first use.
func (s *SocioService) roster(ctx context.Context, user domain.Identity) (*Roster, error) {
	if user.UserID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	r, fresh := s.sessions.Roster(user)
	if fresh {
		if res := r.Load(ctx); !res.Success {
			return nil, remoteErr(res)
		}
	}
	return r, nil
}

// List returns the members matching text and status.
func (s *SocioService) List(ctx context.Context, user domain.Identity, text string, status domain.SocioStatus) ([]domain.Socio, error) {
	r, err := s.roster(ctx, user)
	if err != nil {
		return nil, err
	}
	return r.Search(text, status), nil
}

// Refresh forces a reload of the user's roster.
func (s *SocioService) Refresh(ctx context.Context, user domain.Identity) error {
	r, err := s.roster(ctx, user)
	if err != nil {
		return err
	}
	if res := r.Load(ctx); !res.Success {
		return remoteErr(res)
	}
	return nil
}

// Overview returns status counts and the tier breakdown.
func (s *SocioService) Overview(ctx context.Context, user domain.Identity) (*SocioOverview, error) {
	r, err := s.roster(ctx, user)
	if err != nil {
		return nil, err
	}
	return &SocioOverview{Stats: r.Stats(), PorTier: r.TierBreakdown()}, nil
}

// Create validates the draft and adds the member. A repeated idempotency key
// returns the member created the first time.
func (s *SocioService) Create(ctx context.Context, user domain.Identity, draft validation.SocioDraft, idempotencyKey string) (*CreateResult, error) {
	if res := s.validator.Validate(draft); !res.Valid {
		return nil, &validation.Error{Fields: res.Errors}
	}

	r, err := s.roster(ctx, user)
	if err != nil {
		return nil, err
	}

	reserved := false
	if idempotencyKey != "" && s.idem != nil {
		ok, id, err := s.idem.Reserve(ctx, idempotencyKey)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("idempotency reserve failed, creating anyway")
		case ok:
			reserved = true
		case id != "":
			s.logger.Info().Str("idempotency_key", idempotencyKey).Str("socio_id", id).Msg("idempotent replay")
			metrics.IdempotentReplaysTotal.Inc()
			return &CreateResult{Result: Result{Success: true, ID: id}, AlreadyExisted: true}, nil
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrRequestInFlight, idempotencyKey)
		}
	}

	socio := draft.Socio()
	res := r.Add(ctx, socio)
	if !res.Success {
		if reserved {
			if err := s.idem.Release(ctx, idempotencyKey); err != nil {
				s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, remoteErr(res)
	}

	if reserved {
		if err := s.idem.Remember(ctx, idempotencyKey, res.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.notify(ports.Notification{
		Kind:    ports.NotifySocioWelcome,
		Subject: res.ID,
		Title:   "¡Bienvenido!",
		Message: fmt.Sprintf("¡Bienvenido %s!", socio.DisplayName()),
	})
	return &CreateResult{Result: res}, nil
}

// Update validates the member as it would look after the patch, then edits it.
func (s *SocioService) Update(ctx context.Context, user domain.Identity, id string, patch domain.SocioPatch) (*Result, error) {
	r, err := s.roster(ctx, user)
	if err != nil {
		return nil, err
	}

	current, ok := r.Find(id)
	if !ok {
		if res := r.Load(ctx); !res.Success {
			return nil, remoteErr(res)
		}
		if current, ok = r.Find(id); !ok {
			return nil, domain.ErrSocioNotFound
		}
	}

	if patch.IsEmpty() {
		return &Result{Success: true, ID: id}, nil
	}
	patch = patch.Trimmed()

	merged := patch.Apply(current)
	draft := validation.DraftFromSocio(merged)
	if patch.Nombre != nil {
		draft.Nombre = merged.Nombre
	}
	if res := s.validator.Validate(draft); !res.Valid {
		return nil, &validation.Error{Fields: res.Errors}
	}

	res := r.Edit(ctx, id, patch)
	if !res.Success {
		return nil, remoteErr(res)
	}

	s.notify(ports.Notification{
		Kind:    ports.NotifySocioUpdated,
		Subject: id,
		Title:   "Socio actualizado",
		Message: "Socio actualizado correctamente",
	})
	return &res, nil
}

// Delete removes the member permanently.
func (s *SocioService) Delete(ctx context.Context, user domain.Identity, id string) (*Result, error) {
	r, err := s.roster(ctx, user)
	if err != nil {
		return nil, err
	}

	res := r.Remove(ctx, id)
	if !res.Success {
		return nil, remoteErr(res)
	}

	s.notify(ports.Notification{
		Kind:    ports.NotifySocioRemoved,
		Subject: id,
		Title:   "Socio eliminado",
		Message: "Socio eliminado correctamente",
	})
	return &res, nil
}

// EndSession drops the user's roster.
func (s *SocioService) EndSession(userID string) bool {
	return s.sessions.End(userID)
}

func (s *SocioService) notify(n ports.Notification) {
	if s.queue != nil {
		s.queue.Enqueue(n)
	}
}

// remoteErr turns a failed Result into an error the transport can classify.
func remoteErr(res Result) error {
	cause := res.Err()
	if errors.Is(cause, domain.ErrSocioNotFound) || errors.Is(cause, domain.ErrNotAuthenticated) {
		return cause
	}
	return fmt.Errorf("%w: %s", domain.ErrRemoteOperation, res.Error)
}
