package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

// RBAC lets the request through only when the role claim set by Auth is one
// of allowedRoles. Rejections surface as domain.ErrForbidden.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return fmt.Errorf("%w: role %q cannot %s %s", domain.ErrForbidden, role, c.Request().Method, c.Path())
			}
			return next(c)
		}
	}
}
