package domain

import "time"

// TripStatus is derived from the trip's date range, never set directly.
type TripStatus string

const (
	TripStatusNotStarted TripStatus = "Not started"
	TripStatusOngoing    TripStatus = "Ongoing"
	TripStatusEnded      TripStatus = "Reservation ended"
	TripStatusUnknown    TripStatus = "Unknown status"
)

// Trip is a fixed-itinerary offering with a bounded date range and capacity.
type Trip struct {
	ID           int64
	Name         string
	Price        float64
	Features     []string
	Availability string
	Itinerary    string
	Destination  string
	VehicleType  string
	MaxSeats     int
	Status       TripStatus
	StartDate    time.Time
	EndDate      time.Time
	StartTime    string
	ImageCover   *string
	Images       []string
	CreatedAt    time.Time
}

// TripStatusFor maps a computed phase onto the trip status label.
func TripStatusFor(phase Phase) TripStatus {
	switch phase {
	case PhaseNotStarted:
		return TripStatusNotStarted
	case PhaseOngoing:
		return TripStatusOngoing
	case PhaseEnded:
		return TripStatusEnded
	default:
		return TripStatusUnknown
	}
}
