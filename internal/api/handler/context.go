package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hairbook/booking-api/internal/api/middleware"
)

// ctxUserID extracts the caller identity injected by the Auth middleware.
// An empty value means the route was mounted without the gate.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
