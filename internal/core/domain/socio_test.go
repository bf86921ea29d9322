package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocioPatch_Apply(t *testing.T) {
	estado := StatusInactivo
	tel := "5500000000"
	patched := SocioPatch{Estado: &estado, Telefono: &tel}.Apply(sampleRoster()[0])

	assert.Equal(t, StatusInactivo, patched.Estado)
	assert.Equal(t, tel, patched.Telefono)
	assert.Equal(t, "Ana López", patched.Nombre)
	assert.False(t, SocioPatch{Estado: &estado}.IsEmpty())
	assert.True(t, SocioPatch{}.IsEmpty())
}

func TestSocioPatch_Trimmed(t *testing.T) {
	nombre := "  Ana  "
	email := " ana@gym.mx\t"
	tel := " 5512345678 "
	p := SocioPatch{Nombre: &nombre, Email: &email, Telefono: &tel}.Trimmed()

	assert.Equal(t, "Ana", *p.Nombre)
	assert.Equal(t, "ana@gym.mx", *p.Email)
	assert.Equal(t, tel, *p.Telefono)
	assert.Nil(t, p.Apellidos)
	assert.Equal(t, "  Ana  ", nombre, "the caller's values are not modified")
}

func TestSocio_ApplyDefaults(t *testing.T) {
	s := Socio{Nombre: "Ana"}
	s.ApplyDefaults()
	assert.Equal(t, TierBasica, s.TipoMembresia)
	assert.Equal(t, StatusActivo, s.Estado)

	vip := Socio{TipoMembresia: TierVIP, Estado: StatusInactivo}
	vip.ApplyDefaults()
	assert.Equal(t, TierVIP, vip.TipoMembresia)
	assert.Equal(t, StatusInactivo, vip.Estado)
}
