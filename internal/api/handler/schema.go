package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/hairbook/booking-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is not validated: blank credentials fail as invalid credentials.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type publicUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  publicUser `json:"user"`
}

// --- Location ---

// Coordinates are pointers so that 0 is accepted and only an absent field fails.
type locationRequest struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lng *float64 `json:"lng" validate:"required"`
}

type locationResponse struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type userLocationResponse struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Phone    string           `json:"phone"`
	Location locationResponse `json:"location"`
}

// --- Bookings ---

type createBookingRequest struct {
	HairdresserName string   `json:"hairdresserName" validate:"required"`
	Date            string   `json:"date"            validate:"required"`
	Price           *float64 `json:"price"           validate:"required"`
}

type bookingResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	HairdresserName string    `json:"hairdresserName"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"createdAt"`
}

// bookingDateLayouts are tried in order when parsing a booking date.
var bookingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseBookingDate accepts RFC 3339, a local minute-precision timestamp or a
// bare date. Values without a zone are read as UTC.
func parseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must be RFC 3339 or YYYY-MM-DD", domain.ErrValidation)
}
