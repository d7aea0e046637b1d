package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/finledger/ledger-api/internal/core/ports"
)

// Auth resolves the bearer token through the auth service and injects the
// resulting username into the request context. Resolution hits the
// snapshot store on every request; there is no token cache.
func Auth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			username, err := authService.Authenticate(c.Request().Context(), header)
			if err != nil {
				return err
			}
			c.Set("username", username)
			return next(c)
		}
	}
}
