package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phoenix-adventures/trip-service/internal/domain"
	"github.com/phoenix-adventures/trip-service/internal/events"
	"github.com/phoenix-adventures/trip-service/internal/repository"
	"github.com/phoenix-adventures/trip-service/internal/storage"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// CustomizedTripService implements the bespoke trip request negotiation flow.
type CustomizedTripService struct {
	cusTrips   repository.CustomizedTripRepository
	users      repository.UserRepository
	receipts   repository.ReceiptRepository
	store      storage.Store
	dispatcher events.Dispatcher
}

// NewCustomizedTripService builds the service.
func NewCustomizedTripService(
	cusTrips repository.CustomizedTripRepository,
	users repository.UserRepository,
	receipts repository.ReceiptRepository,
	store storage.Store,
	dispatcher events.Dispatcher,
) *CustomizedTripService {
	return &CustomizedTripService{
		cusTrips:   cusTrips,
		users:      users,
		receipts:   receipts,
		store:      store,
		dispatcher: dispatcher,
	}
}

// CreateCustomizedTripInput describes a new bespoke request.
type CreateCustomizedTripInput struct {
	Destination     string
	Itinerary       string
	NumberOfPersons int
	Comment         string
	StartDate       time.Time
	EndDate         time.Time
}

// Create files a new request. A user may hold at most one request still
// awaiting a price.
func (s *CustomizedTripService) Create(ctx context.Context, userID int64, input CreateCustomizedTripInput) (*domain.CustomizedTrip, error) {
	if input.Destination == "" || input.Itinerary == "" {
		return nil, apperrors.NewValidationError("a request needs a destination and an itinerary", nil)
	}
	if input.NumberOfPersons <= 0 {
		return nil, apperrors.NewValidationError("number of persons must be positive", nil)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.NewValidationError("end date must not precede start date", nil)
	}

	trip := &domain.CustomizedTrip{
		UserID:          userID,
		Destination:     input.Destination,
		Itinerary:       input.Itinerary,
		NumberOfPersons: input.NumberOfPersons,
		Comment:         input.Comment,
		Status:          domain.CustomizedTripStatusFor(domain.ComputePhase(time.Now(), input.StartDate, input.EndDate)),
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
	}
	if err := s.cusTrips.Create(ctx, trip); err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
			return nil, apperrors.NewConflict("you have already applied for a customized trip, please wait until we respond to that request", nil)
		}
		return nil, err
	}
	return trip, nil
}

// ListPending returns requests whose trips have not started, for admins.
func (s *CustomizedTripService) ListPending(ctx context.Context) ([]domain.CustomizedTripWithRequester, error) {
	return s.cusTrips.RefreshAndListPending(ctx)
}

// ListMine returns the calling user's own requests.
func (s *CustomizedTripService) ListMine(ctx context.Context, userID int64) ([]domain.CustomizedTrip, error) {
	return s.cusTrips.ListByUser(ctx, userID)
}

// Get returns one request with a freshly derived status. Non-admin callers
// may only read their own requests.
func (s *CustomizedTripService) Get(ctx context.Context, caller *domain.User, id int64) (*domain.CustomizedTrip, error) {
	trip, err := s.cusTrips.RefreshAndGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && trip.UserID != caller.ID {
		return nil, apperrors.NewForbidden("you do not have permission to view this request")
	}
	return trip, nil
}

// AdminRespond prices a pending request exactly once and notifies the
// requester.
func (s *CustomizedTripService) AdminRespond(ctx context.Context, id int64, price float64) (*domain.CustomizedTrip, error) {
	if price <= 0 {
		return nil, apperrors.NewValidationError("price must be positive", nil)
	}

	updated, err := s.cusTrips.SetAdminResponse(ctx, id, price)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Distinguish a missing row from one already priced.
		if _, err := s.cusTrips.RefreshAndGet(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperrors.NewConflict("you have already responded to that customized trip", nil)
	}

	withRequester, err := s.cusTrips.GetWithRequester(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type: events.EventCustomizedTripPriced,
		Recipient: events.Recipient{
			UserID:    withRequester.Requester.UserID,
			Email:     withRequester.Requester.Email,
			FirstName: withRequester.Requester.FirstName,
		},
		Payload: events.CustomizedTripPricedPayload{
			CusTripID: withRequester.ID,
			Price:     derefFloat(withRequester.Price),
		},
	})
	return &withRequester.CustomizedTrip, nil
}

// UserRespond records the requester's decision on a priced request. Accepting
// confirms the booking; rejecting deletes the request so the user can file a
// new one.
func (s *CustomizedTripService) UserRespond(ctx context.Context, caller *domain.User, id int64, response string) (*domain.CustomizedTrip, error) {
	trip, err := s.cusTrips.RefreshAndGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.UserID != caller.ID {
		return nil, apperrors.NewForbidden("you do not have permission to respond to this request")
	}
	if trip.AdminResponse != domain.AdminResponseResponded {
		return nil, apperrors.NewValidationError("this request has not been priced yet", nil)
	}
	if trip.Status != domain.CustomizedTripNotStarted {
		return nil, apperrors.NewValidationError("the trip is either ongoing or finished", nil)
	}

	switch {
	case strings.EqualFold(response, "accept") || strings.EqualFold(response, "accepted"):
		accepted, err := s.cusTrips.Accept(ctx, id)
		if err != nil {
			return nil, err
		}
		if !accepted {
			return nil, apperrors.NewConflict("you have already responded", nil)
		}
		return s.cusTrips.RefreshAndGet(ctx, id)
	case strings.EqualFold(response, "reject") || strings.EqualFold(response, "rejected"):
		if trip.UserResponse != domain.UserResponsePending {
			return nil, apperrors.NewConflict("you have already responded", nil)
		}
		if err := s.cusTrips.Delete(ctx, id); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, apperrors.NewValidationError("response must be accept or reject", nil)
	}
}

// UploadReceipt stores the payment proof for an accepted request and marks it
// paid. A second upload is refused.
func (s *CustomizedTripService) UploadReceipt(ctx context.Context, caller *domain.User, id int64, file UploadInput) (*domain.PaymentReceipt, error) {
	trip, err := s.cusTrips.RefreshAndGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.UserID != caller.ID {
		return nil, apperrors.NewForbidden("you do not have permission to pay for this request")
	}
	if trip.UserResponse != domain.UserResponseAccepted {
		return nil, apperrors.NewValidationError("you must accept the offered price before paying", nil)
	}
	if trip.PaymentStatus == domain.PaymentStatusPaid {
		return nil, apperrors.NewConflict("you have already uploaded your receipt", nil)
	}

	ext := filepath.Ext(file.Filename)
	key := fmt.Sprintf("receipt-cus-trip-%d-user-%d-%s%s", id, caller.ID, uuid.NewString(), ext)
	url, err := s.store.Upload(ctx, key, file.ContentType, file.Reader)
	if err != nil {
		return nil, err
	}

	receipt := &domain.PaymentReceipt{
		UserID:    caller.ID,
		CusTripID: &id,
		ImageURL:  url,
		TripType:  domain.TripTypeCustomized,
	}
	marked, err := s.cusTrips.AddReceiptAndMarkPaid(ctx, receipt)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, apperrors.NewConflict("you have already uploaded your receipt", nil)
	}
	return receipt, nil
}

// ReceiptsFor lists the uploaded receipts for a request joined with their
// uploaders.
func (s *CustomizedTripService) ReceiptsFor(ctx context.Context, id int64) ([]domain.ReceiptWithUploader, error) {
	if _, err := s.cusTrips.RefreshAndGet(ctx, id); err != nil {
		return nil, err
	}
	return s.receipts.ListForCustomizedTrip(ctx, id)
}

func (s *CustomizedTripService) publish(ctx context.Context, event events.Event) {
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

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
