package dto

import (
	"time"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

// CreateCustomizedTripRequest payload for a bespoke trip request.
type CreateCustomizedTripRequest struct {
	Destination     string    `json:"destination"`
	Itinerary       string    `json:"itinerary"`
	NumberOfPersons int       `json:"number_of_persons"`
	Comment         string    `json:"comment"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
}

// AdminRespondRequest carries the offered price.
type AdminRespondRequest struct {
	Price float64 `json:"price"`
}

// UserRespondRequest carries the requester's decision, accept or reject.
type UserRespondRequest struct {
	Response string `json:"response"`
}

// CustomizedTripResponse is the public request shape.
type CustomizedTripResponse struct {
	ID              int64                       `json:"id"`
	UserID          int64                       `json:"user_id"`
	Destination     string                      `json:"destination"`
	Itinerary       string                      `json:"itinerary"`
	NumberOfPersons int                         `json:"number_of_persons"`
	Comment         string                      `json:"comment"`
	Price           *float64                    `json:"price"`
	Status          domain.CustomizedTripStatus `json:"status"`
	AdminResponse   domain.AdminResponse        `json:"admin_response"`
	UserResponse    domain.UserResponse         `json:"user_response"`
	PaymentStatus   domain.PaymentStatus        `json:"trip_payment_status"`
	StartDate       time.Time                   `json:"start_date"`
	EndDate         time.Time                   `json:"end_date"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// RequesterResponse identifies the owning user on admin listings.
type RequesterResponse struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// CustomizedTripWithRequesterResponse joins a request with its owner.
type CustomizedTripWithRequesterResponse struct {
	CustomizedTripResponse
	Requester RequesterResponse `json:"requester"`
}

// NewCustomizedTripResponse maps a domain request.
func NewCustomizedTripResponse(trip *domain.CustomizedTrip) CustomizedTripResponse {
	return CustomizedTripResponse{
		ID:              trip.ID,
		UserID:          trip.UserID,
		Destination:     trip.Destination,
		Itinerary:       trip.Itinerary,
		NumberOfPersons: trip.NumberOfPersons,
		Comment:         trip.Comment,
		Price:           trip.Price,
		Status:          trip.Status,
		AdminResponse:   trip.AdminResponse,
		UserResponse:    trip.UserResponse,
		PaymentStatus:   trip.PaymentStatus,
		StartDate:       trip.StartDate,
		EndDate:         trip.EndDate,
		CreatedAt:       trip.CreatedAt,
	}
}

// NewCustomizedTripListResponse maps a slice of requests.
func NewCustomizedTripListResponse(trips []domain.CustomizedTrip) []CustomizedTripResponse {
	result := make([]CustomizedTripResponse, 0, len(trips))
	for i := range trips {
		result = append(result, NewCustomizedTripResponse(&trips[i]))
	}
	return result
}

// NewCustomizedTripWithRequesterListResponse maps admin-facing listings.
func NewCustomizedTripWithRequesterListResponse(trips []domain.CustomizedTripWithRequester) []CustomizedTripWithRequesterResponse {
	result := make([]CustomizedTripWithRequesterResponse, 0, len(trips))
	for i := range trips {
		row := &trips[i]
		result = append(result, CustomizedTripWithRequesterResponse{
			CustomizedTripResponse: NewCustomizedTripResponse(&row.CustomizedTrip),
			Requester: RequesterResponse{
				UserID:    row.Requester.UserID,
				FirstName: row.Requester.FirstName,
				LastName:  row.Requester.LastName,
				Email:     row.Requester.Email,
			},
		})
	}
	return result
}
