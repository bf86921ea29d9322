package domain

import (
	"sync/atomic"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a staff account. The photo and display name form the staff profile.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	DisplayName  string    `json:"displayName"`
	Email        string    `json:"email"`
	PhotoURL     string    `json:"photoURL,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is what the authentication service knows about the current user.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
	PhotoURL    string
	Role        string
}

// Session is the explicit per-login context handed to session-scoped components.
type Session struct {
	Identity
	StartedAt time.Time

	ended atomic.Bool
}

// Active reports whether the session has a user and has not been ended.
func (s *Session) Active() bool {
	return s != nil && s.UserID != "" && !s.ended.Load()
}

// NewSession starts a session for id.
func NewSession(id Identity, startedAt time.Time) *Session {
	return &Session{Identity: id, StartedAt: startedAt}
}

// End closes the session; session-scoped operations fail afterwards.
func (s *Session) End() {
	if s != nil {
		s.ended.Store(true)
	}
}

