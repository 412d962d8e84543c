package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxPrincipal extracts the caller principal injected by the Auth
// middleware. An empty principal means the middleware did not run or the
// token was minted without one; either way the request is unusable.
func ctxPrincipal(c echo.Context) (string, error) {
	principal, _ := c.Get("principal").(string)
	if principal == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
