package handler

import (
	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/validation"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Fields  validation.FieldErrors `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"notblank,looseemail"`
}

type passwordResetConfirmRequest struct {
	Token    string `json:"token"    validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// --- Profile ---

type profileUpdateRequest struct {
	DisplayName string `json:"displayName" validate:"notblank"`
}

type photoResponse struct {
	PhotoURL string `json:"photoURL"`
}

// --- Socios ---

type socioListResponse struct {
	Data  []domain.Socio `json:"data"`
	Total int            `json:"total"`
}

type socioMutationResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// --- Turnos ---

type turnoRequest struct {
	Socio string `json:"socio"`
	Fecha string `json:"fecha"`
	Hora  string `json:"hora"`
}

type turnoListResponse struct {
	Data []domain.Turno `json:"data"`
}

type slotsResponse struct {
	Fecha string   `json:"fecha"`
	Slots []string `json:"slots"`
}

// --- Accesorios ---

type accesorioView struct {
	domain.Accesorio
	EstadoLabel string `json:"estadoLabel"`
	Faltantes   int    `json:"faltantes"`
}

type accesorioListResponse struct {
	Data []accesorioView `json:"data"`
}

type accesorioUpdateRequest struct {
	Estado   *domain.AccesorioEstado `json:"estado,omitempty"`
	Contados *int                    `json:"contados,omitempty"`
	Obs      *string                 `json:"obs,omitempty"`
}
