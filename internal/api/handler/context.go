package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/api/middleware"
)

// ContextUserID is the context key the Auth middleware stores the user id under.
const ContextUserID = middleware.ContextUserID

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware. A missing id means the route was mounted without it.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
