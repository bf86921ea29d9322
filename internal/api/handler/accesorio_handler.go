package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
)

// AccesorioService is what the checklist endpoints need from the service layer.
type AccesorioService interface {
	List(ctx context.Context) ([]domain.Accesorio, error)
	Apply(ctx context.Context, id string, ch service.AccesorioChange) (*domain.Accesorio, error)
	Summary(ctx context.Context) (domain.AccesorioSummary, error)
}

type AccesorioHandler struct {
	service AccesorioService
}

func NewAccesorioHandler(service AccesorioService) *AccesorioHandler {
	return &AccesorioHandler{service: service}
}

// List handles GET /v1/accesorios.
//
// @Summary      Equipment checklist
// @Tags         accesorios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accesorioListResponse
// @Router       /v1/accesorios [get]
func (h *AccesorioHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accesorioListResponse{Data: toAccesorioViews(items)})
}

// Summary handles GET /v1/accesorios/summary.
//
// @Summary      Checklist totals
// @Tags         accesorios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AccesorioSummary
// @Router       /v1/accesorios/summary [get]
func (h *AccesorioHandler) Summary(c echo.Context) error {
	sum, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

// Update handles PATCH /v1/accesorios/:id.
//
// @Summary      Update a checklist item
// @Tags         accesorios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Item id"
// @Param        body  body      accesorioUpdateRequest  true  "estado, contados or obs"
// @Success      200   {object}  accesorioView
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/accesorios/{id} [patch]
func (h *AccesorioHandler) Update(c echo.Context) error {
	var req accesorioUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Estado == nil && req.Contados == nil && req.Obs == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	item, err := h.service.Apply(c.Request().Context(), c.Param("id"), toAccesorioChange(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccesorioView(*item))
}
