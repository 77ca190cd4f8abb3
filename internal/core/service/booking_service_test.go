package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hairbook/booking-api/internal/core/domain"
	"github.com/hairbook/booking-api/internal/core/ports"
)

func bookingInput(userID string, date time.Time) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		UserID:          userID,
		HairdresserName: "Marta",
		Date:            date,
		Price:           25,
	}
}

func TestBookingService_Create_Success(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := NewBookingService(repo, nil, discardLogger)

	date := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	b, err := svc.CreateBooking(context.Background(), bookingInput("user-1", date))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if b.Status != domain.StatusPending {
		t.Errorf("expected status %q, got %q", domain.StatusPending, b.Status)
	}
	if b.UserID != "user-1" {
		t.Errorf("expected owner user-1, got %q", b.UserID)
	}
	if b.CreatedAt.IsZero() {
		t.Error("CreatedAt must be server-assigned")
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestBookingService_Create_Validation(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := NewBookingService(repo, nil, discardLogger)

	in := bookingInput("user-1", time.Now())
	in.HairdresserName = ""
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(repo.bookings) != 0 {
		t.Fatal("invalid booking must not be stored")
	}
}

func TestBookingService_Create_RepoError(t *testing.T) {
	repo := &stubBookingRepo{createErr: errors.New("db unavailable")}
	svc := NewBookingService(repo, nil, discardLogger)

	if _, err := svc.CreateBooking(context.Background(), bookingInput("user-1", time.Now())); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

func TestBookingService_Create_IdempotencyReplay(t *testing.T) {
	repo := &stubBookingRepo{}
	dedup := newStubDedup()
	svc := NewBookingService(repo, dedup, discardLogger)

	in := bookingInput("user-1", time.Now())
	in.IdempotencyKey = "key-abc"

	if _, err := svc.CreateBooking(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, domain.ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking on replay, got %v", err)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected 1 stored booking, got %d", len(repo.bookings))
	}

	// The key is scoped to the caller.
	other := in
	other.UserID = "user-2"
	if _, err := svc.CreateBooking(context.Background(), other); err != nil {
		t.Fatalf("same key from another user must create: %v", err)
	}
}

func TestBookingService_Create_DedupErrorCreatesAnyway(t *testing.T) {
	repo := &stubBookingRepo{}
	dedup := newStubDedup()
	dedup.reserveErr = errors.New("redis timeout")
	svc := NewBookingService(repo, dedup, discardLogger)

	in := bookingInput("user-1", time.Now())
	in.IdempotencyKey = "key-abc"

	if _, err := svc.CreateBooking(context.Background(), in); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected booking to be created when dedup errors")
	}
}

func TestBookingService_Create_KeyHeldWhileFirstRequestInFlight(t *testing.T) {
	repo := &stubBookingRepo{}
	dedup := newStubDedup()
	svc := NewBookingService(repo, dedup, discardLogger)

	in := bookingInput("user-1", time.Now())
	in.IdempotencyKey = "key-abc"

	var concurrentErr error
	repo.onCreate = func() {
		_, concurrentErr = svc.CreateBooking(context.Background(), in)
	}

	if _, err := svc.CreateBooking(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if !errors.Is(concurrentErr, domain.ErrDuplicateBooking) {
		t.Fatalf("request racing the first insert: expected ErrDuplicateBooking, got %v", concurrentErr)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestBookingService_Create_FailedInsertReleasesKey(t *testing.T) {
	repo := &stubBookingRepo{createErr: errors.New("db unavailable")}
	dedup := newStubDedup()
	svc := NewBookingService(repo, dedup, discardLogger)

	in := bookingInput("user-1", time.Now())
	in.IdempotencyKey = "key-abc"

	if _, err := svc.CreateBooking(context.Background(), in); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
	if len(dedup.released) != 1 {
		t.Fatalf("expected the key to be released, got %v", dedup.released)
	}

	repo.createErr = nil
	if _, err := svc.CreateBooking(context.Background(), in); err != nil {
		t.Fatalf("retry with the same key must create: %v", err)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestBookingService_Create_ReserveErrorSkipsRelease(t *testing.T) {
	repo := &stubBookingRepo{createErr: errors.New("db unavailable")}
	dedup := newStubDedup()
	dedup.reserveErr = errors.New("redis timeout")
	svc := NewBookingService(repo, dedup, discardLogger)

	in := bookingInput("user-1", time.Now())
	in.IdempotencyKey = "key-abc"

	_, _ = svc.CreateBooking(context.Background(), in)
	if len(dedup.released) != 0 {
		t.Fatalf("a key that was never reserved must not be released, got %v", dedup.released)
	}
}

func TestBookingService_Create_NoKeySkipsDedup(t *testing.T) {
	repo := &stubBookingRepo{}
	dedup := newStubDedup()
	svc := NewBookingService(repo, dedup, discardLogger)

	_, _ = svc.CreateBooking(context.Background(), bookingInput("user-1", time.Now()))
	_, _ = svc.CreateBooking(context.Background(), bookingInput("user-1", time.Now()))

	if len(repo.bookings) != 2 {
		t.Errorf("without a key each call must create, got %d", len(repo.bookings))
	}
	if len(dedup.reserved) != 0 {
		t.Errorf("expected no dedup keys, got %v", dedup.reserved)
	}
}

func TestBookingService_List_NewestDateFirst(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := NewBookingService(repo, nil, discardLogger)

	d1 := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	d3 := d1.AddDate(0, 0, 2)
	for _, d := range []time.Time{d2, d3, d1} {
		if _, err := svc.CreateBooking(context.Background(), bookingInput("user-1", d)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	list, err := svc.ListBookings(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(list))
	}
	want := []time.Time{d3, d2, d1}
	for i, b := range list {
		if !b.Date.Equal(want[i]) {
			t.Errorf("position %d: want %v, got %v", i, want[i], b.Date)
		}
	}
}

func TestBookingService_List_OwnerIsolation(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := NewBookingService(repo, nil, discardLogger)

	if _, err := svc.CreateBooking(context.Background(), bookingInput("user-a", time.Now())); err != nil {
		t.Fatalf("seed: %v", err)
	}

	list, err := svc.ListBookings(context.Background(), "user-b")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("user-b must not see user-a bookings, got %d", len(list))
	}
}
