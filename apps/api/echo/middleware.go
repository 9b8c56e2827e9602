package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/access"
)

// pageMiddleware guards a route group behind the role → pages table: the
// session role must be allowed to view the given page.
func pageMiddleware(page access.Page) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if access.Allowed(claims.Role, page) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
