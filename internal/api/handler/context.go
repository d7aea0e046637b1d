package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUsername extracts the username injected by the Auth middleware and
// fast-fails when it is absent, which means the middleware did not run or
// the route is misconfigured.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return username, nil
}
