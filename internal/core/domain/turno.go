package domain

import (
	"strconv"
	"strings"
)

// TurnoEstado is the state of an appointment.
type TurnoEstado string

const TurnoPendiente TurnoEstado = "PENDIENTE"

// TurnoDateLayout is the calendar date format used by Fecha.
const TurnoDateLayout = "2006-01-02"

// Turno is a member appointment at a fixed time slot.
type Turno struct {
	ID     string      `json:"id"`
	Socio  string      `json:"socio"`
	Fecha  string      `json:"fecha"`
	Hora   string      `json:"hora"`
	Estado TurnoEstado `json:"estado"`
}

// Slots is the fixed daily list of bookable times.
var Slots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
}

// IsSlot reports whether hora is one of the fixed slots.
func IsSlot(hora string) bool {
	for _, s := range Slots {
		if s == hora {
			return true
		}
	}
	return false
}

// SlotHour returns the hour component of an "HH:MM" slot, or -1 when malformed.
func SlotHour(slot string) int {
	hh, _, ok := strings.Cut(slot, ":")
	if !ok {
		return -1
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return -1
	}
	return h
}
