package domain

import "time"

// Role gates access to admin-only operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain model for registered travelers and administrators.
type User struct {
	ID                     int64
	FirstName              string
	LastName               string
	Email                  string
	PasswordHash           string
	Role                   Role
	Active                 bool
	LastLoggedIn           time.Time
	PasswordChangedAt      *time.Time
	PasswordResetToken     *string
	PasswordResetExpiresAt *time.Time
	TripID                 *int64
	CreatedAt              time.Time
}

// FullName concatenates first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
