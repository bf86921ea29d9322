package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/ports"
)

// Sessions keeps one roster per logged-in user. A roster lives from the
// user's first request after login until Logout.
type Sessions struct {
	dir ports.SocioDirectory
	log zerolog.Logger
	now func() time.Time

	mu      sync.Mutex
	rosters map[string]*Roster
}

func NewSessions(dir ports.SocioDirectory, log zerolog.Logger) *Sessions {
	return &Sessions{
		dir:     dir,
		log:     log,
		now:     time.Now,
		rosters: make(map[string]*Roster),
	}
}

// Roster returns the user's roster, starting a session when none exists.
// The bool reports whether the roster was just created and still needs a Load.
func (s *Sessions) Roster(user domain.Identity) (*Roster, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rosters[user.UserID]; ok && r.Session().Active() {
		return r, false
	}

	r := NewRoster(s.dir, domain.NewSession(user, s.now().UTC()), s.log)
	s.rosters[user.UserID] = r
	s.log.Debug().Str("user_id", user.UserID).Msg("session started")
	return r, true
}

// End closes the user's session and drops its roster.
func (s *Sessions) End(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rosters[userID]
	if !ok {
		return false
	}
	r.Session().End()
	delete(s.rosters, userID)
	s.log.Debug().Str("user_id", userID).Msg("session ended")
	return true
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rosters)
}
