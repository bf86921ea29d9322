package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/ports"
	"github.com/gimnasio/gym-system/internal/core/validation"
	"github.com/gimnasio/gym-system/internal/pkg/metrics"
)

const resetTokenTTL = time.Hour

// AuthService implements staff sign-up, login and password reset.
type AuthService struct {
	repo       ports.AuthRepository
	resets     ports.ResetTokenStore
	queue      ports.NotificationQueue
	jwtSecret  string
	tokenTTL   time.Duration
	adminEmail string
	logger     zerolog.Logger
}

// AuthOptions holds the optional AuthService settings.
type AuthOptions struct {
	TokenTTL time.Duration
	// AdminEmail registers that address with the admin role.
	AdminEmail string
}

func NewAuthService(
	repo ports.AuthRepository,
	resets ports.ResetTokenStore,
	queue ports.NotificationQueue,
	jwtSecret string,
	opts AuthOptions,
	logger zerolog.Logger,
) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		resets:     resets,
		queue:      queue,
		jwtSecret:  jwtSecret,
		tokenTTL:   opts.TokenTTL,
		adminEmail: strings.ToLower(strings.TrimSpace(opts.AdminEmail)),
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, form validation.SignUp) (*domain.User, error) {
	if err := validation.CheckSignUp(form); err != nil {
		return nil, err
	}

	email := normalizeEmail(form.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleStaff
	if s.adminEmail != "" && email == s.adminEmail {
		role = domain.RoleAdmin
	}

	first, last := strings.TrimSpace(form.FirstName), strings.TrimSpace(form.LastName)
	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    first,
		LastName:     last,
		DisplayName:  first + " " + last,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("staff user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	return token, user, nil
}

// RequestPasswordReset stores a one-time token and queues it for delivery.
// Unknown addresses are reported as ErrUserNotFound.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrValidation
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.resets.Save(ctx, token, user.ID, resetTokenTTL); err != nil {
		return err
	}

	if s.queue != nil {
		s.queue.Enqueue(ports.Notification{
			Kind:    ports.NotifyPasswordReset,
			Subject: user.Email,
			Title:   "Restablecer contraseña",
			Message: token,
		})
	}
	s.logger.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

// ConfirmPasswordReset consumes token and sets newPassword under the sign-up rule.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return domain.ErrInvalidResetToken
	}
	if !validation.StrongPassword(newPassword) {
		return domain.ErrWeakPassword
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"name":  user.DisplayName,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
