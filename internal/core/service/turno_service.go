package service

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/validation"
)

// TurnoService keeps the appointment book in memory.
type TurnoService struct {
	now    func() time.Time
	logger zerolog.Logger

	mu     sync.RWMutex
	turnos []domain.Turno
}

func NewTurnoService(now func() time.Time, logger zerolog.Logger) *TurnoService {
	if now == nil {
		now = time.Now
	}
	return &TurnoService{now: now, logger: logger}
}

// TurnoInput is the appointment form.
type TurnoInput struct {
	Socio string `json:"socio"`
	Fecha string `json:"fecha"`
	Hora  string `json:"hora"`
}

// check normalizes the form and rejects a hora that AvailableSlots would not
// offer for its fecha.
func (s *TurnoService) check(in TurnoInput) (TurnoInput, error) {
	in.Socio = strings.TrimSpace(in.Socio)
	in.Fecha = strings.TrimSpace(in.Fecha)
	in.Hora = strings.TrimSpace(in.Hora)

	errs := validation.FieldErrors{}
	required := func(field, value, msg string) {
		if value == "" {
			errs[field] = validation.FieldError{Kind: validation.RequiredFieldError, Message: msg}
		}
	}
	required("socio", in.Socio, "El socio es requerido")
	required("fecha", in.Fecha, "La fecha es requerida")
	required("hora", in.Hora, "La hora es requerida")

	if _, ok := errs["fecha"]; !ok {
		if _, err := time.Parse(domain.TurnoDateLayout, in.Fecha); err != nil {
			errs["fecha"] = validation.FieldError{Kind: validation.InvalidFormatError, Message: "La fecha no es válida"}
		}
	}
	if len(errs) > 0 {
		return in, &validation.Error{Fields: errs}
	}
	if !slices.Contains(s.AvailableSlots(in.Fecha), in.Hora) {
		return in, fmt.Errorf("%w: %s %s", domain.ErrSlotUnavailable, in.Fecha, in.Hora)
	}
	return in, nil
}

// List returns the appointments, newest first.
func (s *TurnoService) List() []domain.Turno {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Turno, len(s.turnos))
	copy(out, s.turnos)
	return out
}

// Create books a new pending appointment.
func (s *TurnoService) Create(in TurnoInput) (*domain.Turno, error) {
	in, err := s.check(in)
	if err != nil {
		return nil, err
	}

	t := domain.Turno{
		ID:     uuid.NewString(),
		Socio:  in.Socio,
		Fecha:  in.Fecha,
		Hora:   in.Hora,
		Estado: domain.TurnoPendiente,
	}

	s.mu.Lock()
	s.turnos = append([]domain.Turno{t}, s.turnos...)
	s.mu.Unlock()

	s.logger.Info().Str("turno_id", t.ID).Str("fecha", t.Fecha).Str("hora", t.Hora).Msg("turno created")
	return &t, nil
}

// Update replaces socio, fecha and hora of an appointment.
func (s *TurnoService) Update(id string, in TurnoInput) (*domain.Turno, error) {
	in, err := s.check(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.turnos {
		if s.turnos[i].ID == id {
			s.turnos[i].Socio = in.Socio
			s.turnos[i].Fecha = in.Fecha
			s.turnos[i].Hora = in.Hora
			t := s.turnos[i]
			return &t, nil
		}
	}
	return nil, domain.ErrTurnoNotFound
}

// Delete removes an appointment.
func (s *TurnoService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.turnos {
		if s.turnos[i].ID == id {
			s.turnos = append(s.turnos[:i], s.turnos[i+1:]...)
			return nil
		}
	}
	return domain.ErrTurnoNotFound
}

// AvailableSlots returns the bookable times for fecha. For today only the
// slots whose hour is after the current hour are offered.
func (s *TurnoService) AvailableSlots(fecha string) []string {
	now := s.now()
	if strings.TrimSpace(fecha) != now.Format(domain.TurnoDateLayout) {
		return append([]string(nil), domain.Slots...)
	}

	out := make([]string, 0, len(domain.Slots))
	for _, slot := range domain.Slots {
		if domain.SlotHour(slot) > now.Hour() {
			out = append(out, slot)
		}
	}
	return out
}
