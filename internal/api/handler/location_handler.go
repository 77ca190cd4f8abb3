package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hairbook/booking-api/internal/api/metrics"
	"github.com/hairbook/booking-api/internal/core/ports"
)

// LocationHandler serves the caller's location report and the admin view of it.
type LocationHandler struct {
	service ports.UserService
}

func NewLocationHandler(service ports.UserService) *LocationHandler {
	return &LocationHandler{service: service}
}

// Update handles POST /api/location. The user is always the token subject.
//
// @Summary      Report current location
// @Tags         location
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      locationRequest  true  "Coordinates"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/location [post]
func (h *LocationHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.UpdateLocation(c.Request().Context(), userID, *req.Lat, *req.Lng); err != nil {
		return err
	}

	metrics.LocationUpdatesTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Location updated"})
}

// ListAll handles GET /api/admin/users-locations. Admin only.
//
// @Summary      List every user with a known location
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userLocationResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users-locations [get]
func (h *LocationHandler) ListAll(c echo.Context) error {
	rows, err := h.service.ListUserLocations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserLocationResponses(rows))
}
