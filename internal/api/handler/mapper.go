package handler

import (
	"github.com/hairbook/booking-api/internal/core/domain"
)

// --- Domain → Response ---

func toPublicUser(u *domain.User) publicUser {
	return publicUser{
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		HairdresserName: b.HairdresserName,
		Date:            b.Date,
		Status:          string(b.Status),
		Price:           b.Price,
		CreatedAt:       b.CreatedAt,
	}
}

func toBookingResponses(bookings []*domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toUserLocationResponses(rows []domain.UserLocation) []userLocationResponse {
	out := make([]userLocationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, userLocationResponse{
			Name:  r.Name,
			Email: r.Email,
			Phone: r.Phone,
			Location: locationResponse{
				Lat:       r.Location.Lat,
				Lng:       r.Location.Lng,
				UpdatedAt: r.Location.UpdatedAt,
			},
		})
	}
	return out
}
