package ports

import (
	"context"

	"github.com/hairbook/booking-api/internal/core/domain"
)

// BookingRepository is the booking store.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// ListByUser returns the bookings owned by userID, newest date first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
}
