package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/ports"
	"github.com/gimnasio/gym-system/internal/core/validation"
)

type stubAuthRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
	seq   int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = "user-" + strconv.Itoa(r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if update.DisplayName != nil {
		u.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		u.PhotoURL = *update.PhotoURL
	}
	return nil
}

func (r *stubAuthRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type stubResetStore struct {
	tokens map[string]string
	ttl    time.Duration
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{tokens: make(map[string]string)}
}

func (s *stubResetStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.tokens[token] = userID
	s.ttl = ttl
	return nil
}

func (s *stubResetStore) Consume(_ context.Context, token string) (string, error) {
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, token)
	return id, nil
}

type stubQueue struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (q *stubQueue) Enqueue(n ports.Notification) {
	q.mu.Lock()
	q.sent = append(q.sent, n)
	q.mu.Unlock()
}

func (q *stubQueue) all() []ports.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ports.Notification(nil), q.sent...)
}

func validSignUp(email string) validation.SignUp {
	return validation.SignUp{
		FirstName:       "Ana",
		LastName:        "Ruiz",
		Email:           email,
		Password:        "Abc123",
		ConfirmPassword: "Abc123",
	}
}

func newTestAuthService(repo *stubAuthRepo, resets *stubResetStore, queue *stubQueue) *AuthService {
	return NewAuthService(repo, resets, queue, "secret", AuthOptions{TokenTTL: time.Hour, AdminEmail: "jefa@gym.mx"}, discardLogger)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubResetStore(), &stubQueue{})

	user, err := svc.Register(context.Background(), validSignUp(" Ana@Gym.mx "))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "Abc123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abc123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Email != "ana@gym.mx" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.DisplayName != "Ana Ruiz" {
		t.Fatalf("unexpected display name %q", user.DisplayName)
	}
	if user.Role != domain.RoleStaff {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_AdminEmail(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubResetStore(), &stubQueue{})

	user, err := svc.Register(context.Background(), validSignUp("jefa@gym.mx"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubResetStore(), &stubQueue{})

	missing := validSignUp("ana@gym.mx")
	missing.FirstName = ""
	if _, err := svc.Register(context.Background(), missing); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	mismatch := validSignUp("ana@gym.mx")
	mismatch.ConfirmPassword = "Abc999"
	if _, err := svc.Register(context.Background(), mismatch); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	weak := validSignUp("ana@gym.mx")
	weak.Password, weak.ConfirmPassword = "abcdef", "abcdef"
	if _, err := svc.Register(context.Background(), weak); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubResetStore(), &stubQueue{})

	_, _ = svc.Register(context.Background(), validSignUp("bob@gym.mx"))
	if _, err := svc.Register(context.Background(), validSignUp("BOB@gym.mx")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubResetStore(), &stubQueue{})

	registered, err := svc.Register(context.Background(), validSignUp("jefa@gym.mx"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "jefa@gym.mx", "Abc123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["email"] != "jefa@gym.mx" {
		t.Fatalf("unexpected email claim %v", claims["email"])
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubResetStore(), &stubQueue{})

	_, _ = svc.Register(context.Background(), validSignUp("dave@gym.mx"))
	if _, _, err := svc.Login(context.Background(), "dave@gym.mx", "Wrong123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubResetStore(), &stubQueue{})

	if _, _, err := svc.Login(context.Background(), "ghost@gym.mx", "Abc123"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_PasswordReset_RoundTrip(t *testing.T) {
	repo := newStubAuthRepo()
	resets := newStubResetStore()
	queue := &stubQueue{}
	svc := newTestAuthService(repo, resets, queue)

	if _, err := svc.Register(context.Background(), validSignUp("eva@gym.mx")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.RequestPasswordReset(context.Background(), "eva@gym.mx"); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}
	if resets.ttl != time.Hour {
		t.Fatalf("expected 1h token ttl, got %s", resets.ttl)
	}

	sent := queue.all()
	if len(sent) != 1 || sent[0].Kind != ports.NotifyPasswordReset || sent[0].Subject != "eva@gym.mx" {
		t.Fatalf("unexpected notifications: %+v", sent)
	}
	token := sent[0].Message

	if err := svc.ConfirmPasswordReset(context.Background(), token, "weak"); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ConfirmPasswordReset(context.Background(), token, "Nueva123"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "eva@gym.mx", "Nueva123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if err := svc.ConfirmPasswordReset(context.Background(), token, "Otra1234"); err != domain.ErrInvalidResetToken {
		t.Fatalf("expected token to be single use, got %v", err)
	}
}

func TestAuthService_PasswordReset_UnknownEmail(t *testing.T) {
	queue := &stubQueue{}
	svc := newTestAuthService(newStubAuthRepo(), newStubResetStore(), queue)

	if err := svc.RequestPasswordReset(context.Background(), "nadie@gym.mx"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(queue.all()) != 0 {
		t.Fatalf("no notification expected")
	}
}
