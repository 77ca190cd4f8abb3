package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hairbook/booking-api/internal/api/metrics"
	"github.com/hairbook/booking-api/internal/core/domain"
	"github.com/hairbook/booking-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry a booking request safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/bookings.
//
// @Summary      Book an appointment
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      201              {object}  messageResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		return err
	}

	_, err = h.service.CreateBooking(c.Request().Context(), ports.CreateBookingInput{
		UserID:          userID,
		HairdresserName: req.HairdresserName,
		Date:            date,
		Price:           *req.Price,
		IdempotencyKey:  c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			metrics.BookingsDedupTotal.Inc()
		}
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Booking created successfully"})
}

// List handles GET /api/bookings, newest appointment first.
//
// @Summary      List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListBookings(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}
