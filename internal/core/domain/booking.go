package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const StatusPending BookingStatus = "pending"

// Booking is an appointment request made by a user with a hairdresser.
// Bookings are immutable once created.
type Booking struct {
	ID              string
	UserID          string
	HairdresserName string
	Date            time.Time
	Status          BookingStatus
	Price           float64
	CreatedAt       time.Time
}

// NewBooking builds a pending booking owned by userID.
func NewBooking(userID, hairdresserName string, date time.Time, price float64, now time.Time) (*Booking, error) {
	switch {
	case userID == "":
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	case strings.TrimSpace(hairdresserName) == "":
		return nil, fmt.Errorf("%w: hairdressername is required", ErrValidation)
	case date.IsZero():
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	return &Booking{
		UserID:          userID,
		HairdresserName: strings.TrimSpace(hairdresserName),
		Date:            date.UTC(),
		Status:          StatusPending,
		Price:           price,
		CreatedAt:       now.UTC(),
	}, nil
}
