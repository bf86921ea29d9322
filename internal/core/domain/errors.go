package domain

import "errors"

var (
	ErrSocioNotFound    = errors.New("socio not found")
	ErrRemoteOperation  = errors.New("remote operation failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("access forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrRequestInFlight  = errors.New("request with this idempotency key is in progress")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrTurnoNotFound     = errors.New("turno not found")
	ErrSlotUnavailable   = errors.New("time slot unavailable")
	ErrAccesorioNotFound = errors.New("accesorio not found")
)
