package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp           EventType = "user_signed_up"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventTripApplied            EventType = "trip_applied"
	EventCustomizedTripPriced   EventType = "customized_trip_priced"
)

// Recipient identifies who a notification should reach.
type Recipient struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Recipient Recipient   `json:"recipient"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserSignedUpPayload payload.
type UserSignedUpPayload struct {
	Email string `json:"email"`
}

// PasswordResetRequestedPayload payload.
type PasswordResetRequestedPayload struct {
	ResetURL string `json:"reset_url"`
}

// TripAppliedPayload payload.
type TripAppliedPayload struct {
	TripID   int64   `json:"trip_id"`
	TripName string  `json:"trip_name"`
	Price    float64 `json:"price"`
}

// CustomizedTripPricedPayload payload.
type CustomizedTripPricedPayload struct {
	CusTripID int64   `json:"cus_trip_id"`
	Price     float64 `json:"price"`
}
