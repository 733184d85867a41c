package domain

import "time"

// CustomizedTripStatus is derived from the request's date range.
type CustomizedTripStatus string

const (
	CustomizedTripNotStarted CustomizedTripStatus = "Not started"
	CustomizedTripOngoing    CustomizedTripStatus = "Ongoing"
	CustomizedTripEnded      CustomizedTripStatus = "Trip Ended"
	CustomizedTripUnknown    CustomizedTripStatus = "Unknown status"
)

// AdminResponse tracks whether an administrator has priced the request.
type AdminResponse string

const (
	AdminResponsePending   AdminResponse = "Pending"
	AdminResponseResponded AdminResponse = "Responded"
)

// UserResponse tracks the requester's decision on a priced request.
// A rejection deletes the request outright, so no rejected value persists.
type UserResponse string

const (
	UserResponsePending  UserResponse = "Pending"
	UserResponseAccepted UserResponse = "Accepted"
)

// PaymentStatus tracks whether a payment receipt has been uploaded.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// CustomizedTrip is a user-initiated bespoke itinerary proposal requiring
// admin pricing before confirmation.
type CustomizedTrip struct {
	ID              int64
	UserID          int64
	Destination     string
	Itinerary       string
	NumberOfPersons int
	Comment         string
	Price           *float64
	Status          CustomizedTripStatus
	AdminResponse   AdminResponse
	UserResponse    UserResponse
	PaymentStatus   PaymentStatus
	StartDate       time.Time
	EndDate         time.Time
	CreatedAt       time.Time
}

// Requester carries the identifying fields of the owning user for
// admin-facing listings and notifications.
type Requester struct {
	UserID    int64
	FirstName string
	LastName  string
	Email     string
}

// CustomizedTripWithRequester joins a request with its owner.
type CustomizedTripWithRequester struct {
	CustomizedTrip
	Requester Requester
}

// CustomizedTripStatusFor maps a computed phase onto the request status label.
func CustomizedTripStatusFor(phase Phase) CustomizedTripStatus {
	switch phase {
	case PhaseNotStarted:
		return CustomizedTripNotStarted
	case PhaseOngoing:
		return CustomizedTripOngoing
	case PhaseEnded:
		return CustomizedTripEnded
	default:
		return CustomizedTripUnknown
	}
}
