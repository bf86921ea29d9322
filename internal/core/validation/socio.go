// Package validation checks member drafts and staff passwords before they
// reach the roster or the auth service. Errors are collected per field so a
// form can show all of them at once.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

// ErrorKind distinguishes a missing value from a malformed one.
type ErrorKind string

const (
	RequiredFieldError ErrorKind = "RequiredFieldError"
	InvalidFormatError ErrorKind = "InvalidFormatError"
)

// FieldError is the error shown next to a single form field.
type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps a JSON field name to its error.
type FieldErrors map[string]FieldError

// Result is the outcome of validating a draft.
type Result struct {
	Valid  bool        `json:"valid"`
	Errors FieldErrors `json:"errors,omitempty"`
}

// Rules selects between the form variants.
type Rules struct {
	// RequirePhone makes telefono mandatory instead of optional.
	RequirePhone bool
}

// SocioDraft is the form payload for a member before it is submitted.
type SocioDraft struct {
	Nombre          string `json:"nombre"          validate:"notblank"`
	Email           string `json:"email"           validate:"notblank,looseemail"`
	Telefono        string `json:"telefono"        validate:"phone10"`
	Direccion       string `json:"direccion"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Genero          string `json:"genero"`
	TipoMembresia   string `json:"tipoMembresia"   validate:"omitempty,tier"`
	Estado          string `json:"estado"          validate:"omitempty,socioestado"`
}

// DraftFromSocio builds a draft from a stored record, using the display name.
func DraftFromSocio(s domain.Socio) SocioDraft {
	return SocioDraft{
		Nombre:          s.DisplayName(),
		Email:           s.Email,
		Telefono:        s.Telefono,
		Direccion:       s.Direccion,
		FechaNacimiento: s.FechaNacimiento,
		Genero:          s.Genero,
		TipoMembresia:   string(s.TipoMembresia),
		Estado:          string(s.Estado),
	}
}

// Socio converts a valid draft into a record with defaults applied.
func (d SocioDraft) Socio() domain.Socio {
	s := domain.Socio{
		Nombre:          strings.TrimSpace(d.Nombre),
		Email:           strings.TrimSpace(d.Email),
		Telefono:        d.Telefono,
		Direccion:       d.Direccion,
		FechaNacimiento: d.FechaNacimiento,
		Genero:          d.Genero,
		TipoMembresia:   domain.MembershipTier(d.TipoMembresia),
		Estado:          domain.SocioStatus(d.Estado),
	}
	s.ApplyDefaults()
	return s
}

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	tenDigits    = regexp.MustCompile(`^\d{10}$`)
)

var messages = map[string]FieldError{
	"nombre/notblank":        {RequiredFieldError, "El nombre es requerido"},
	"email/notblank":         {RequiredFieldError, "El email es requerido"},
	"email/looseemail":       {InvalidFormatError, "El email no es válido"},
	"telefono/phonerequired": {RequiredFieldError, "El teléfono es requerido"},
	"telefono/phone10":       {InvalidFormatError, "El teléfono debe tener 10 dígitos"},
	"tipoMembresia/tier":     {InvalidFormatError, "El tipo de membresía no es válido"},
	"estado/socioestado":     {InvalidFormatError, "El estado no es válido"},
}

// SocioValidator validates member drafts under a fixed rule set.
type SocioValidator struct {
	v     *validator.Validate
	rules Rules
}

// NewSocioValidator registers the member tags on a fresh validator instance.
func NewSocioValidator(rules Rules) *SocioValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	Register(v)
	return &SocioValidator{v: v, rules: rules}
}

// Register adds the member tags to an existing validator so request structs
// elsewhere can reuse them.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()
		return phone == "" || tenDigits.MatchString(stripSpace(phone))
	})
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		return domain.MembershipTier(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("socioestado", func(fl validator.FieldLevel) bool {
		return domain.SocioStatus(fl.Field().String()).IsValid()
	})
}

// Validate checks every field and collects all failures.
func (sv *SocioValidator) Validate(d SocioDraft) Result {
	errs := FieldErrors{}

	if err := sv.v.Struct(d); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			errs["_"] = FieldError{Kind: InvalidFormatError, Message: err.Error()}
		}
		for _, fe := range ve {
			field := fe.Field()
			if _, seen := errs[field]; seen {
				continue
			}
			errs[field] = lookup(field, fe.Tag())
		}
	}

	if sv.rules.RequirePhone && strings.TrimSpace(d.Telefono) == "" {
		errs["telefono"] = lookup("telefono", "phonerequired")
	}

	if len(errs) == 0 {
		return Result{Valid: true}
	}
	return Result{Valid: false, Errors: errs}
}

func lookup(field, tag string) FieldError {
	if fe, ok := messages[field+"/"+tag]; ok {
		return fe
	}
	return FieldError{Kind: InvalidFormatError, Message: field + " no es válido"}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Error wraps a failed Result so it can travel as a Go error to the transport layer.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	return "validation failed"
}

func (e *Error) Unwrap() error {
	return domain.ErrValidation
}
