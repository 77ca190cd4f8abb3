package ports

import (
	"context"

	"github.com/hairbook/booking-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists a new user and returns it with its assigned ID.
	// A second user with the same email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateLocation overwrites the location sub-record of the user with the given ID.
	UpdateLocation(ctx context.Context, userID string, loc domain.Location) error
	// ListWithLocation returns every user that has reported a location at least once.
	ListWithLocation(ctx context.Context) ([]*domain.User, error)
}
