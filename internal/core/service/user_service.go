package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hairbook/booking-api/internal/core/domain"
	"github.com/hairbook/booking-api/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log, now: time.Now}
}

// UpdateLocation overwrites the caller's last known position.
func (s *UserService) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	if userID == "" {
		return fmt.Errorf("%w: user is required", domain.ErrValidation)
	}

	loc := domain.Location{Lat: lat, Lng: lng, UpdatedAt: s.now().UTC()}
	if err := s.repo.UpdateLocation(ctx, userID, loc); err != nil {
		return fmt.Errorf("update location: %w", err)
	}

	s.log.Debug().Str("user_id", userID).Float64("lat", lat).Float64("lng", lng).Msg("location updated")
	return nil
}

// ListUserLocations returns the admin report of every user with a known location.
func (s *UserService) ListUserLocations(ctx context.Context) ([]domain.UserLocation, error) {
	users, err := s.repo.ListWithLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("list user locations: %w", err)
	}

	out := make([]domain.UserLocation, 0, len(users))
	for _, u := range users {
		if u.Location == nil {
			continue
		}
		out = append(out, domain.UserLocation{
			Name:     u.Name,
			Email:    u.Email,
			Phone:    u.Phone,
			Location: *u.Location,
		})
	}
	return out, nil
}
