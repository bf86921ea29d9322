package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
	"github.com/gimnasio/gym-system/internal/core/validation"
)

// SocioService is what the member endpoints need from the service layer.
type SocioService interface {
	List(ctx context.Context, user domain.Identity, text string, status domain.SocioStatus) ([]domain.Socio, error)
	Refresh(ctx context.Context, user domain.Identity) error
	Overview(ctx context.Context, user domain.Identity) (*service.SocioOverview, error)
	Create(ctx context.Context, user domain.Identity, draft validation.SocioDraft, idempotencyKey string) (*service.CreateResult, error)
	Update(ctx context.Context, user domain.Identity, id string, patch domain.SocioPatch) (*service.Result, error)
	Delete(ctx context.Context, user domain.Identity, id string) (*service.Result, error)
}

// SocioHandler handles HTTP requests for the member roster.
type SocioHandler struct {
	service SocioService
}

func NewSocioHandler(service SocioService) *SocioHandler {
	return &SocioHandler{service: service}
}

// List handles GET /v1/socios.
//
// @Summary      Search members
// @Tags         socios
// @Produce      json
// @Security     BearerAuth
// @Param        q        query     string  false  "Text matched against name, email and phone"
// @Param        estado   query     string  false  "Activo, Inactivo or Todos"
// @Param        refresh  query     bool    false  "Reload from the directory first"
// @Success      200      {object}  socioListResponse
// @Failure      401      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /v1/socios [get]
func (h *SocioHandler) List(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if refresh, _ := strconv.ParseBool(c.QueryParam("refresh")); refresh {
		if err := h.service.Refresh(ctx, user); err != nil {
			return err
		}
	}

	status := domain.SocioStatus(c.QueryParam("estado"))
	if status != "" && status != domain.StatusTodos && !status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "estado must be one of: Activo, Inactivo, Todos")
	}

	socios, err := h.service.List(ctx, user, c.QueryParam("q"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, socioListResponse{Data: socios, Total: len(socios)})
}

// Stats handles GET /v1/socios/stats.
//
// @Summary      Member statistics
// @Tags         socios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.SocioOverview
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/socios/stats [get]
func (h *SocioHandler) Stats(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ov, err := h.service.Overview(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ov)
}

// Create handles POST /v1/socios.
//
// @Summary      Add a member
// @Tags         socios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      validation.SocioDraft  true   "Member form"
// @Success      201              {object}  socioMutationResponse
// @Success      200              {object}  socioMutationResponse  "Replay of an earlier request"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "Same key still being processed"
// @Failure      422              {object}  errorResponse
// @Failure      502              {object}  errorResponse
// @Router       /v1/socios [post]
func (h *SocioHandler) Create(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var draft validation.SocioDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.service.Create(c.Request().Context(), user, draft, c.Request().Header.Get("Idempotency-Key"))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
	}
	c.Response().Header().Set(echo.HeaderLocation, "/v1/socios/"+res.ID)
	return c.JSON(status, socioMutationResponse{Success: true, ID: res.ID})
}

// Update handles PATCH /v1/socios/:id.
//
// @Summary      Edit a member
// @Tags         socios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Member id"
// @Param        body  body      domain.SocioPatch  true  "Fields to change"
// @Success      200   {object}  socioMutationResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/socios/{id} [patch]
func (h *SocioHandler) Update(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var patch domain.SocioPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.service.Update(c.Request().Context(), user, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, socioMutationResponse{Success: res.Success, ID: res.ID})
}

// Delete handles DELETE /v1/socios/:id. Admin only.
//
// @Summary      Remove a member permanently
// @Tags         socios
// @Security     BearerAuth
// @Param        id   path  string  true  "Member id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/socios/{id} [delete]
func (h *SocioHandler) Delete(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if _, err := h.service.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
