package ports

import (
	"context"

	"github.com/hairbook/booking-api/internal/core/domain"
)

// UserService covers location tracking and the admin location report.
type UserService interface {
	UpdateLocation(ctx context.Context, userID string, lat, lng float64) error
	ListUserLocations(ctx context.Context) ([]domain.UserLocation, error)
}
