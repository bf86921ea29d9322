package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
)

// TurnoService is what the appointment endpoints need from the service layer.
type TurnoService interface {
	List() []domain.Turno
	Create(in service.TurnoInput) (*domain.Turno, error)
	Update(id string, in service.TurnoInput) (*domain.Turno, error)
	Delete(id string) error
	AvailableSlots(fecha string) []string
}

type TurnoHandler struct {
	service TurnoService
}

func NewTurnoHandler(service TurnoService) *TurnoHandler {
	return &TurnoHandler{service: service}
}

// List handles GET /v1/turnos.
//
// @Summary      List appointments
// @Tags         turnos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  turnoListResponse
// @Router       /v1/turnos [get]
func (h *TurnoHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, turnoListResponse{Data: h.service.List()})
}

// Slots handles GET /v1/turnos/slots.
//
// @Summary      Bookable time slots
// @Tags         turnos
// @Produce      json
// @Security     BearerAuth
// @Param        fecha  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200    {object}  slotsResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/turnos/slots [get]
func (h *TurnoHandler) Slots(c echo.Context) error {
	fecha := c.QueryParam("fecha")
	if fecha == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fecha is required")
	}
	return c.JSON(http.StatusOK, slotsResponse{Fecha: fecha, Slots: h.service.AvailableSlots(fecha)})
}

// Create handles POST /v1/turnos.
//
// @Summary      Book an appointment
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      turnoRequest  true  "Appointment"
// @Success      201   {object}  domain.Turno
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/turnos [post]
func (h *TurnoHandler) Create(c echo.Context) error {
	var req turnoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	t, err := h.service.Create(toTurnoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /v1/turnos/:id.
//
// @Summary      Reschedule an appointment
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Appointment id"
// @Param        body  body      turnoRequest  true  "Appointment"
// @Success      200   {object}  domain.Turno
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/turnos/{id} [put]
func (h *TurnoHandler) Update(c echo.Context) error {
	var req turnoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	t, err := h.service.Update(c.Param("id"), toTurnoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /v1/turnos/:id.
//
// @Summary      Cancel an appointment
// @Tags         turnos
// @Security     BearerAuth
// @Param        id   path  string  true  "Appointment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/turnos/{id} [delete]
func (h *TurnoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
