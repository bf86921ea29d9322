package domain

import (
	"strings"
	"time"
)

// MembershipTier classifies a member's plan.
type MembershipTier string

const (
	TierBasica  MembershipTier = "Básica"
	TierPremium MembershipTier = "Premium"
	TierVIP     MembershipTier = "VIP"
)

// Tiers lists every membership tier in display order.
var Tiers = []MembershipTier{TierBasica, TierPremium, TierVIP}

// IsValid reports whether t is one of the known tiers.
func (t MembershipTier) IsValid() bool {
	for _, known := range Tiers {
		if t == known {
			return true
		}
	}
	return false
}

// SocioStatus is the activity state of a member.
type SocioStatus string

const (
	StatusActivo   SocioStatus = "Activo"
	StatusInactivo SocioStatus = "Inactivo"

	// StatusTodos is the filter sentinel meaning "any status". It is never stored.
	StatusTodos SocioStatus = "Todos"
)

// IsValid reports whether s is a storable status (Todos is not).
func (s SocioStatus) IsValid() bool {
	return s == StatusActivo || s == StatusInactivo
}

// Socio is a gym member record as held by the directory and the roster.
type Socio struct {
	ID                string         `json:"id"`
	Nombre            string         `json:"nombre,omitempty"`
	Nombres           string         `json:"nombres,omitempty"`
	Apellidos         string         `json:"apellidos,omitempty"`
	Email             string         `json:"email,omitempty"`
	Telefono          string         `json:"telefono,omitempty"`
	Direccion         string         `json:"direccion,omitempty"`
	FechaNacimiento   string         `json:"fechaNacimiento,omitempty"`
	Genero            string         `json:"genero,omitempty"`
	TipoMembresia     MembershipTier `json:"tipoMembresia,omitempty"`
	Estado            SocioStatus    `json:"estado,omitempty"`
	PhotoURL          string         `json:"photoURL,omitempty"`
	FechaRegistro     time.Time      `json:"fechaRegistro,omitempty"`
	FechaModificacion *time.Time     `json:"fechaModificacion,omitempty"`
}

// DisplayName returns Nombre, or the joined split-name fields when Nombre is empty.
func (s Socio) DisplayName() string {
	if n := strings.TrimSpace(s.Nombre); n != "" {
		return n
	}
	return strings.TrimSpace(strings.TrimSpace(s.Nombres) + " " + strings.TrimSpace(s.Apellidos))
}

// ApplyDefaults fills the enumerated fields that the form leaves empty.
func (s *Socio) ApplyDefaults() {
	if s.TipoMembresia == "" {
		s.TipoMembresia = TierBasica
	}
	if s.Estado == "" {
		s.Estado = StatusActivo
	}
}

// SocioPatch carries a partial update. Nil fields are left untouched.
type SocioPatch struct {
	Nombre          *string         `json:"nombre,omitempty"`
	Nombres         *string         `json:"nombres,omitempty"`
	Apellidos       *string         `json:"apellidos,omitempty"`
	Email           *string         `json:"email,omitempty"`
	Telefono        *string         `json:"telefono,omitempty"`
	Direccion       *string         `json:"direccion,omitempty"`
	FechaNacimiento *string         `json:"fechaNacimiento,omitempty"`
	Genero          *string         `json:"genero,omitempty"`
	TipoMembresia   *MembershipTier `json:"tipoMembresia,omitempty"`
	Estado          *SocioStatus    `json:"estado,omitempty"`
	PhotoURL        *string         `json:"photoURL,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SocioPatch) IsEmpty() bool {
	return p.Nombre == nil && p.Nombres == nil && p.Apellidos == nil && p.Email == nil &&
		p.Telefono == nil && p.Direccion == nil && p.FechaNacimiento == nil && p.Genero == nil &&
		p.TipoMembresia == nil && p.Estado == nil && p.PhotoURL == nil
}

// Trimmed returns the patch with surrounding whitespace removed from the
// name and email fields, the same way a new member's draft is cleaned.
func (p SocioPatch) Trimmed() SocioPatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	p.Nombre = trim(p.Nombre)
	p.Nombres = trim(p.Nombres)
	p.Apellidos = trim(p.Apellidos)
	p.Email = trim(p.Email)
	return p
}

// Apply returns a copy of s with the patch fields overlaid.
func (p SocioPatch) Apply(s Socio) Socio {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&s.Nombre, p.Nombre)
	setStr(&s.Nombres, p.Nombres)
	setStr(&s.Apellidos, p.Apellidos)
	setStr(&s.Email, p.Email)
	setStr(&s.Telefono, p.Telefono)
	setStr(&s.Direccion, p.Direccion)
	setStr(&s.FechaNacimiento, p.FechaNacimiento)
	setStr(&s.Genero, p.Genero)
	setStr(&s.PhotoURL, p.PhotoURL)
	if p.TipoMembresia != nil {
		s.TipoMembresia = *p.TipoMembresia
	}
	if p.Estado != nil {
		s.Estado = *p.Estado
	}
	return s
}
