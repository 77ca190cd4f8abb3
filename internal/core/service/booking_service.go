package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/hairbook/booking-api/internal/core/domain"
	"github.com/hairbook/booking-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	// Reserve atomically claims the key for userID. It returns false when
	// the key was already claimed.
	Reserve(ctx context.Context, userID, key string) (bool, error)
	// Release drops a claim whose booking was never stored.
	Release(ctx context.Context, userID, key string) error
}

// noopDedup is used when no idempotency store is configured.
type noopDedup struct{}

func (noopDedup) Reserve(context.Context, string, string) (bool, error) { return true, nil }
func (noopDedup) Release(context.Context, string, string) error          { return nil }

type BookingService struct {
	repo  ports.BookingRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewBookingService returns a BookingService. dedup may be nil.
func NewBookingService(repo ports.BookingRepository, dedup DedupChecker, log zerolog.Logger) *BookingService {
	if dedup == nil {
		dedup = noopDedup{}
	}
	return &BookingService{repo: repo, dedup: dedup, log: log}
}

// CreateBooking persists a pending booking for the caller. When an
// idempotency key is supplied it is reserved before the insert; a key already
// reserved by this user yields domain.ErrDuplicateBooking and no booking.
func (s *BookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	booking, err := domain.NewBooking(in.UserID, in.HairdresserName, in.Date, in.Price, time.Now())
	if err != nil {
		return nil, err
	}

	reserved := false
	if in.IdempotencyKey != "" {
		ok, err := s.dedup.Reserve(ctx, in.UserID, in.IdempotencyKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("dedup reserve failed, creating anyway")
		case !ok:
			return nil, domain.ErrDuplicateBooking
		default:
			reserved = true
		}
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create booking")
		if reserved {
			if relErr := s.dedup.Release(ctx, in.UserID, in.IdempotencyKey); relErr != nil {
				s.log.Warn().Err(relErr).Str("user_id", in.UserID).Msg("failed to release dedup key")
			}
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info().
		Str("booking_id", created.ID).
		Str("user_id", created.UserID).
		Str("hairdresser", created.HairdresserName).
		Msg("booking created")

	return created, nil
}

// ListBookings returns the caller's bookings ordered by date, newest first.
func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]*domain.Booking, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	slices.SortStableFunc(bookings, func(a, b *domain.Booking) int {
		return b.Date.Compare(a.Date)
	})
	return bookings, nil
}
