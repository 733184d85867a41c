package dto

import (
	"time"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

// UpdateMeRequest carries optional profile fields; absent fields keep their
// prior values. Password and role fields are not accepted here.
type UpdateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// UserResponse is the public account shape; the password hash and reset token
// never leave the server.
type UserResponse struct {
	ID           int64       `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Active       bool        `json:"active"`
	LastLoggedIn time.Time   `json:"last_logged_in"`
	TripID       *int64      `json:"trip_id"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user to its public shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Role:         user.Role,
		Active:       user.Active,
		LastLoggedIn: user.LastLoggedIn,
		TripID:       user.TripID,
		CreatedAt:    user.CreatedAt,
	}
}
