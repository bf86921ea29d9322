package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/ports"
	"github.com/gimnasio/gym-system/internal/pkg/metrics"
)

// ProfileService manages the logged-in staff user's own profile.
type ProfileService struct {
	repo   ports.AuthRepository
	media  ports.MediaUploader
	logger zerolog.Logger
}

func NewProfileService(repo ports.AuthRepository, media ports.MediaUploader, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, media: media, logger: logger}
}

// Get returns the current user's account.
func (s *ProfileService) Get(ctx context.Context, user domain.Identity) (*domain.User, error) {
	if user.UserID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.repo.FindByID(ctx, user.UserID)
}

// UpdateDisplayName changes the name shown for the current user.
func (s *ProfileService) UpdateDisplayName(ctx context.Context, user domain.Identity, name string) (*domain.User, error) {
	if user.UserID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: displayName is required", domain.ErrValidation)
	}
	if err := s.repo.UpdateProfile(ctx, user.UserID, ports.ProfileUpdate{DisplayName: &name}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, user.UserID)
}

// UpdatePhoto uploads the image, then records its URL on the profile.
// The first failing step stops the chain and is reported as a single error.
func (s *ProfileService) UpdatePhoto(ctx context.Context, user domain.Identity, filename string, r io.Reader) (string, error) {
	if user.UserID == "" {
		return "", domain.ErrNotAuthenticated
	}

	url, err := s.media.Upload(ctx, filename, r)
	if err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("photo upload failed")
		return "", fmt.Errorf("%w: upload photo: %v", domain.ErrRemoteOperation, err)
	}
	metrics.PhotoUploadsTotal.WithLabelValues("ok").Inc()

	if err := s.repo.UpdateProfile(ctx, user.UserID, ports.ProfileUpdate{PhotoURL: &url}); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("profile photo update failed")
		return "", fmt.Errorf("%w: update profile: %v", domain.ErrRemoteOperation, err)
	}

	s.logger.Info().Str("user_id", user.UserID).Str("photo_url", url).Msg("profile photo updated")
	return url, nil
}
