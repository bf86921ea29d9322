package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

const maxPhotoBytes = 5 << 20

// ProfileService is what the profile endpoints need from the service layer.
type ProfileService interface {
	Get(ctx context.Context, user domain.Identity) (*domain.User, error)
	UpdateDisplayName(ctx context.Context, user domain.Identity, name string) (*domain.User, error)
	UpdatePhoto(ctx context.Context, user domain.Identity, filename string, r io.Reader) (string, error)
}

type ProfileHandler struct {
	service ProfileService
}

func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /v1/profile.
//
// @Summary      Current staff profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	u, err := h.service.Get(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Update handles PATCH /v1/profile.
//
// @Summary      Change display name
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileUpdateRequest  true  "New display name"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	u, err := h.service.UpdateDisplayName(c.Request().Context(), user, req.DisplayName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// UploadPhoto handles POST /v1/profile/photo.
//
// @Summary      Upload profile photo
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        photo  formData  file  true  "Image file"
// @Success      200    {object}  photoResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      502    {object}  errorResponse
// @Router       /v1/profile/photo [post]
func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	if fh.Size > maxPhotoBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo exceeds 5MB")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable photo file")
	}
	defer f.Close()

	url, err := h.service.UpdatePhoto(c.Request().Context(), user, fh.Filename, f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photoResponse{PhotoURL: url})
}
