package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gimnasio/gym-system/internal/api/middleware"
	"github.com/gimnasio/gym-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fails fast when the middleware did not run.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get(middleware.CtxEmail).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	name, _ := c.Get(middleware.CtxName).(string)

	return domain.Identity{
		UserID:      userID,
		Email:       email,
		DisplayName: name,
		Role:        role,
	}, nil
}
