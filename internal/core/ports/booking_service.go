package ports

import (
	"context"
	"time"

	"github.com/hairbook/booking-api/internal/core/domain"
)

// CreateBookingInput carries the data needed to create a booking.
// UserID always comes from the verified token, never from the request body.
type CreateBookingInput struct {
	UserID          string
	HairdresserName string
	Date            time.Time
	Price           float64
	IdempotencyKey  string
}

// BookingService defines use-case operations for bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]*domain.Booking, error)
}
