package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/phoenix-adventures/trip-service/internal/domain"
	"github.com/phoenix-adventures/trip-service/internal/events"
	"github.com/phoenix-adventures/trip-service/internal/repository"
	"github.com/phoenix-adventures/trip-service/internal/storage"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// UploadInput carries one file from a multipart request into a service.
type UploadInput struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// TripService implements fixed-itinerary trip operations.
type TripService struct {
	trips      repository.TripRepository
	users      repository.UserRepository
	receipts   repository.ReceiptRepository
	store      storage.Store
	dispatcher events.Dispatcher
}

// NewTripService builds the service.
func NewTripService(
	trips repository.TripRepository,
	users repository.UserRepository,
	receipts repository.ReceiptRepository,
	store storage.Store,
	dispatcher events.Dispatcher,
) *TripService {
	return &TripService{
		trips:      trips,
		users:      users,
		receipts:   receipts,
		store:      store,
		dispatcher: dispatcher,
	}
}

// CreateTripInput describes a new trip offering.
type CreateTripInput struct {
	Name         string
	Price        float64
	Features     []string
	Availability string
	Itinerary    string
	Destination  string
	VehicleType  string
	MaxSeats     int
	StartDate    time.Time
	EndDate      time.Time
	StartTime    string
}

// CreateTrip registers a new offering; the initial status is derived from
// its date range at insert time.
func (s *TripService) CreateTrip(ctx context.Context, input CreateTripInput) (*domain.Trip, error) {
	if input.Name == "" || input.Destination == "" {
		return nil, apperrors.NewValidationError("a trip needs a name and a destination", nil)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.NewValidationError("end date must not precede start date", nil)
	}

	trip := &domain.Trip{
		Name:         input.Name,
		Price:        input.Price,
		Features:     input.Features,
		Availability: input.Availability,
		Itinerary:    input.Itinerary,
		Destination:  input.Destination,
		VehicleType:  input.VehicleType,
		MaxSeats:     input.MaxSeats,
		Status:       domain.TripStatusFor(domain.ComputePhase(time.Now(), input.StartDate, input.EndDate)),
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		StartTime:    input.StartTime,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips returns all trips with freshly derived statuses.
func (s *TripService) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	return s.trips.RefreshAndList(ctx)
}

// GetTrip returns one trip with a freshly derived status.
func (s *TripService) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	return s.trips.RefreshAndGet(ctx, id)
}

// Apply books the trip for the user. Only trips that have not started accept
// applications, and a user cannot hold the same trip twice.
func (s *TripService) Apply(ctx context.Context, userID, tripID int64) (*domain.Trip, error) {
	trip, err := s.trips.RefreshAndGet(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusNotStarted {
		return nil, apperrors.NewValidationError("you cant apply for this trip, please try another trip", nil)
	}

	assigned, err := s.users.AssignTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, apperrors.NewConflict("you have already applied for that trip", nil)
	}

	if user, err := s.users.GetByID(ctx, userID); err == nil {
		s.publish(ctx, events.Event{
			Type:      events.EventTripApplied,
			Recipient: recipient(user),
			Payload: events.TripAppliedPayload{
				TripID:   trip.ID,
				TripName: trip.Name,
				Price:    trip.Price,
			},
		})
	}
	return trip, nil
}

// UploadImages stores the cover and gallery images and records their URLs
// on the trip.
func (s *TripService) UploadImages(ctx context.Context, tripID int64, cover *UploadInput, gallery []UploadInput) (*domain.Trip, error) {
	if _, err := s.trips.RefreshAndGet(ctx, tripID); err != nil {
		return nil, err
	}

	if cover != nil {
		url, err := s.upload(ctx, fmt.Sprintf("trip-%d-cover", tripID), *cover)
		if err != nil {
			return nil, err
		}
		if err := s.trips.SetImageCover(ctx, tripID, url); err != nil {
			return nil, err
		}
	}

	if len(gallery) > 0 {
		urls := make([]string, 0, len(gallery))
		for i, img := range gallery {
			url, err := s.upload(ctx, fmt.Sprintf("trip-%d-%d", tripID, i+1), img)
			if err != nil {
				return nil, err
			}
			urls = append(urls, url)
		}
		if err := s.trips.SetImages(ctx, tripID, urls); err != nil {
			return nil, err
		}
	}

	return s.trips.RefreshAndGet(ctx, tripID)
}

// UploadReceipt stores a payment proof image for a trip the user applied to.
func (s *TripService) UploadReceipt(ctx context.Context, userID, tripID int64, file UploadInput) (*domain.PaymentReceipt, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TripID == nil || *user.TripID != tripID {
		return nil, apperrors.NewValidationError("you have not applied for this trip", nil)
	}

	url, err := s.upload(ctx, fmt.Sprintf("receipt-trip-%d-user-%d", tripID, userID), file)
	if err != nil {
		return nil, err
	}

	receipt := &domain.PaymentReceipt{
		UserID:   userID,
		TripID:   &tripID,
		ImageURL: url,
		TripType: domain.TripTypeNormal,
	}
	if err := s.receipts.CreateForTrip(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// ReceiptsForTrip lists the uploaded receipts for a trip joined with their
// uploaders.
func (s *TripService) ReceiptsForTrip(ctx context.Context, tripID int64) ([]domain.ReceiptWithUploader, error) {
	if _, err := s.trips.RefreshAndGet(ctx, tripID); err != nil {
		return nil, err
	}
	return s.receipts.ListForTrip(ctx, tripID)
}

func (s *TripService) upload(ctx context.Context, prefix string, file UploadInput) (string, error) {
	ext := filepath.Ext(file.Filename)
	key := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext)
	return s.store.Upload(ctx, key, file.ContentType, file.Reader)
}

func (s *TripService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
