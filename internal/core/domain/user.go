package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Location is the last position a user reported.
type Location struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User models a registered customer or administrator.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Location     *Location `json:"location,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds a user with the default role. passwordHash must already be a digest.
func NewUser(name, email, phone, passwordHash string, now time.Time) (*User, error) {
	email = NormalizeEmail(email)
	switch {
	case strings.TrimSpace(name) == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case email == "":
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	case strings.TrimSpace(phone) == "":
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	case passwordHash == "":
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	return &User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now.UTC(),
	}, nil
}

// UserLocation is the admin report row: public contact details plus position.
type UserLocation struct {
	Name     string
	Email    string
	Phone    string
	Location Location
}
