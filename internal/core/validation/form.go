package validation

import "fmt"

// Form tracks a member draft together with the errors currently shown for it.
type Form struct {
	Draft  SocioDraft
	Errors FieldErrors

	validator *SocioValidator
}

// NewForm starts an empty form with the default tier and status selected.
func NewForm(v *SocioValidator) *Form {
	return &Form{
		Draft:     SocioDraft{TipoMembresia: "Básica", Estado: "Activo"},
		Errors:    FieldErrors{},
		validator: v,
	}
}

// Set updates a single field by its JSON name and clears that field's error.
func (f *Form) Set(field, value string) error {
	switch field {
	case "nombre":
		f.Draft.Nombre = value
	case "email":
		f.Draft.Email = value
	case "telefono":
		f.Draft.Telefono = value
	case "direccion":
		f.Draft.Direccion = value
	case "fechaNacimiento":
		f.Draft.FechaNacimiento = value
	case "genero":
		f.Draft.Genero = value
	case "tipoMembresia":
		f.Draft.TipoMembresia = value
	case "estado":
		f.Draft.Estado = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	delete(f.Errors, field)
	return nil
}

// Submit validates the whole draft and replaces the displayed errors.
func (f *Form) Submit() Result {
	res := f.validator.Validate(f.Draft)
	f.Errors = FieldErrors{}
	for k, v := range res.Errors {
		f.Errors[k] = v
	}
	return res
}
