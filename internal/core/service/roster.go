package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/ports"
	"github.com/gimnasio/gym-system/internal/pkg/metrics"
)

// Result is the uniform outcome of a roster operation.
type Result struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`

	cause error
}

// Err returns the underlying failure, or nil on success.
func (r Result) Err() error {
	return r.cause
}

const (
	msgLoadFailed   = "Error al cargar los socios"
	msgCreateFailed = "Error al crear el socio"
	msgUpdateFailed = "Error al actualizar el socio"
	msgDeleteFailed = "Error al eliminar el socio"
)

// Roster is the session's in-memory copy of the member directory.
//
// Every successful mutation is followed by a full reload; the list is never
// patched locally. Mutations are not queued, so when two run at once the last
// reload to finish decides what the roster shows.
type Roster struct {
	dir     ports.SocioDirectory
	session *domain.Session
	log     zerolog.Logger

	mu      sync.RWMutex
	socios  []domain.Socio
	lastErr string
	loading int
}

// NewRoster binds a roster to a directory and the session that owns it.
func NewRoster(dir ports.SocioDirectory, session *domain.Session, log zerolog.Logger) *Roster {
	return &Roster{
		dir:     dir,
		session: session,
		log:     log.With().Str("user_id", sessionUser(session)).Logger(),
	}
}

// Session returns the session the roster was built for.
func (r *Roster) Session() *domain.Session {
	return r.session
}

// Load fetches the full collection. On failure the previous list is kept.
func (r *Roster) Load(ctx context.Context) Result {
	if !r.session.Active() {
		return r.fail(domain.ErrNotAuthenticated, msgLoadFailed)
	}

	r.mu.Lock()
	r.loading++
	r.lastErr = ""
	r.mu.Unlock()

	start := time.Now()
	socios, err := r.dir.GetAll(ctx)
	metrics.RosterLoadDuration.Observe(time.Since(start).Seconds())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading--

	if err != nil {
		r.lastErr = errorText(err, msgLoadFailed)
		r.log.Error().Err(err).Msg("roster load failed")
		return Result{Success: false, Error: r.lastErr, cause: err}
	}

	r.socios = socios
	r.log.Debug().Int("count", len(socios)).Msg("roster loaded")
	return Result{Success: true}
}

// Add creates a member through the directory and reloads on success.
func (r *Roster) Add(ctx context.Context, s domain.Socio) Result {
	if !r.session.Active() {
		return r.fail(domain.ErrNotAuthenticated, msgCreateFailed)
	}
	r.clearError()

	s.ID = ""
	id, err := r.dir.Create(ctx, s)
	if err != nil {
		metrics.RosterMutationsTotal.WithLabelValues("add", "error").Inc()
		return r.fail(err, msgCreateFailed)
	}
	metrics.RosterMutationsTotal.WithLabelValues("add", "ok").Inc()
	r.log.Info().Str("socio_id", id).Msg("socio created")

	r.Load(ctx)
	return Result{Success: true, ID: id}
}

// Edit sends a partial update and reloads on success.
func (r *Roster) Edit(ctx context.Context, id string, patch domain.SocioPatch) Result {
	if !r.session.Active() {
		return r.fail(domain.ErrNotAuthenticated, msgUpdateFailed)
	}
	r.clearError()

	if err := r.dir.Update(ctx, id, patch); err != nil {
		metrics.RosterMutationsTotal.WithLabelValues("edit", "error").Inc()
		return r.fail(err, msgUpdateFailed)
	}
	metrics.RosterMutationsTotal.WithLabelValues("edit", "ok").Inc()
	r.log.Info().Str("socio_id", id).Msg("socio updated")

	r.Load(ctx)
	return Result{Success: true, ID: id}
}

// Remove hard-deletes a member and reloads on success.
func (r *Roster) Remove(ctx context.Context, id string) Result {
	if !r.session.Active() {
		return r.fail(domain.ErrNotAuthenticated, msgDeleteFailed)
	}
	r.clearError()

	if err := r.dir.Delete(ctx, id); err != nil {
		metrics.RosterMutationsTotal.WithLabelValues("remove", "error").Inc()
		return r.fail(err, msgDeleteFailed)
	}
	metrics.RosterMutationsTotal.WithLabelValues("remove", "ok").Inc()
	r.log.Info().Str("socio_id", id).Msg("socio removed")

	r.Load(ctx)
	return Result{Success: true, ID: id}
}

// Socios returns a copy of the current list.
func (r *Roster) Socios() []domain.Socio {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Socio, len(r.socios))
	copy(out, r.socios)
	return out
}

// Find returns the member with id from the current list.
func (r *Roster) Find(id string) (domain.Socio, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.socios {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Socio{}, false
}

// Search filters the current list; see domain.Search.
func (r *Roster) Search(text string, status domain.SocioStatus) []domain.Socio {
	return domain.Search(r.Socios(), text, status)
}

// Stats aggregates the current list by status.
func (r *Roster) Stats() domain.Stats {
	return domain.ComputeStats(r.Socios())
}

// TierBreakdown counts the current list per membership tier.
func (r *Roster) TierBreakdown() map[domain.MembershipTier]int {
	return domain.CountByTier(r.Socios())
}

// Loading reports whether a reload is in flight.
func (r *Roster) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading > 0
}

// LastError returns the error recorded by the most recent failed operation.
func (r *Roster) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// ClearError forgets the recorded error.
func (r *Roster) ClearError() {
	r.clearError()
}

func (r *Roster) clearError() {
	r.mu.Lock()
	r.lastErr = ""
	r.mu.Unlock()
}

func (r *Roster) fail(err error, fallback string) Result {
	msg := errorText(err, fallback)
	r.mu.Lock()
	r.lastErr = msg
	r.mu.Unlock()
	r.log.Error().Err(err).Msg(fallback)
	return Result{Success: false, Error: msg, cause: err}
}

// errorText picks the message staff see: the fixed table for known backend
// codes, the error itself otherwise.
func errorText(err error, fallback string) string {
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "Debes iniciar sesión para continuar"
	case errors.Is(err, domain.ErrSocioNotFound):
		return "El socio no existe"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func sessionUser(s *domain.Session) string {
	if s == nil {
		return ""
	}
	return s.UserID
}
