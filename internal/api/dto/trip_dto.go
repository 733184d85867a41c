package dto

import (
	"time"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

// CreateTripRequest payload for a new offering.
type CreateTripRequest struct {
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Features     []string  `json:"features"`
	Availability string    `json:"availability"`
	Itinerary    string    `json:"itinerary"`
	Destination  string    `json:"destination"`
	VehicleType  string    `json:"vehicle_type"`
	MaxSeats     int       `json:"max_seats"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	StartTime    string    `json:"start_time"`
}

// TripResponse is the public trip shape.
type TripResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Price        float64           `json:"price"`
	Features     []string          `json:"features"`
	Availability string            `json:"availability"`
	Itinerary    string            `json:"itinerary"`
	Destination  string            `json:"destination"`
	VehicleType  string            `json:"vehicle_type"`
	MaxSeats     int               `json:"max_seats"`
	Status       domain.TripStatus `json:"status"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	StartTime    string            `json:"start_time"`
	ImageCover   *string           `json:"image_cover"`
	Images       []string          `json:"images"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewTripResponse maps a domain trip.
func NewTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:           trip.ID,
		Name:         trip.Name,
		Price:        trip.Price,
		Features:     trip.Features,
		Availability: trip.Availability,
		Itinerary:    trip.Itinerary,
		Destination:  trip.Destination,
		VehicleType:  trip.VehicleType,
		MaxSeats:     trip.MaxSeats,
		Status:       trip.Status,
		StartDate:    trip.StartDate,
		EndDate:      trip.EndDate,
		StartTime:    trip.StartTime,
		ImageCover:   trip.ImageCover,
		Images:       trip.Images,
		CreatedAt:    trip.CreatedAt,
	}
}

// NewTripListResponse maps a slice of trips; an empty slice stays an empty
// JSON array, never null.
func NewTripListResponse(trips []domain.Trip) []TripResponse {
	result := make([]TripResponse, 0, len(trips))
	for i := range trips {
		result = append(result, NewTripResponse(&trips[i]))
	}
	return result
}

// ReceiptResponse describes an uploaded payment proof with its uploader.
type ReceiptResponse struct {
	ImageURL  string `json:"image_url"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// NewReceiptListResponse maps receipts joined with uploader info.
func NewReceiptListResponse(receipts []domain.ReceiptWithUploader) []ReceiptResponse {
	result := make([]ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		result = append(result, ReceiptResponse{
			ImageURL:  r.ImageURL,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
		})
	}
	return result
}
