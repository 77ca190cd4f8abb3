package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hairbook/booking-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	nextID    int
	findErr   error
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Location != nil {
		loc := *u.Location
		clone.Location = &loc
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateLocation(_ context.Context, userID string, loc domain.Location) error {
	for _, u := range r.byEmail {
		if u.ID == userID {
			l := loc
			u.Location = &l
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) ListWithLocation(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byEmail {
		if u.Location != nil {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) seed(t *testing.T, name, email, role string) *domain.User {
	u, err := domain.NewUser(name, email, "555", "digest", time.Now())
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	u.Role = role
	created, err := r.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

// ---------------------------------------------------------------------------
// In-memory booking repository (insertion order, unsorted)
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
	// onCreate runs before the insert, standing in for a request that is
	// still in flight.
	onCreate func()
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.onCreate != nil {
		hook := r.onCreate
		r.onCreate = nil
		hook()
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *b
	clone.ID = fmt.Sprintf("booking-%d", len(r.bookings)+1)
	r.bookings = append(r.bookings, &clone)
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) ListByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Dedup stub
// ---------------------------------------------------------------------------

type stubDedup struct {
	held       map[string]bool
	reserveErr error
	releaseErr error
	reserved   []string
	released   []string
}

func newStubDedup() *stubDedup {
	return &stubDedup{held: make(map[string]bool)}
}

func (d *stubDedup) Reserve(_ context.Context, userID, key string) (bool, error) {
	if d.reserveErr != nil {
		return false, d.reserveErr
	}
	k := userID + ":" + key
	if d.held[k] {
		return false, nil
	}
	d.held[k] = true
	d.reserved = append(d.reserved, k)
	return true, nil
}

func (d *stubDedup) Release(_ context.Context, userID, key string) error {
	if d.releaseErr != nil {
		return d.releaseErr
	}
	k := userID + ":" + key
	delete(d.held, k)
	d.released = append(d.released, k)
	return nil
}
