package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-adventures/trip-service/internal/domain"
	"github.com/phoenix-adventures/trip-service/internal/events"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

func newTripFixture() (*TripService, *mockTripRepository, *mockUserRepository, *mockReceiptRepository, *mockStore, *recordingDispatcher) {
	trips := &mockTripRepository{}
	users := &mockUserRepository{}
	receipts := &mockReceiptRepository{}
	store := &mockStore{}
	dispatcher := &recordingDispatcher{}
	svc := NewTripService(trips, users, receipts, store, dispatcher)
	return svc, trips, users, receipts, store, dispatcher
}

func upcomingTrip() *domain.Trip {
	return &domain.Trip{
		ID:          3,
		Name:        "Desert Safari",
		Price:       499,
		Destination: "Yazd",
		Status:      domain.TripStatusNotStarted,
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 1, 5),
	}
}

func TestApplyForUpcomingTrip(t *testing.T) {
	svc, trips, users, _, _, dispatcher := newTripFixture()

	trip := upcomingTrip()
	trips.On("RefreshAndGet", mock.Anything, int64(3)).Return(trip, nil)
	users.On("AssignTrip", mock.Anything, int64(7), int64(3)).Return(true, nil)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID: 7, FirstName: "Sara", Email: "sara@example.com",
	}, nil)

	got, err := svc.Apply(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventTripApplied, dispatcher.published[0].Type)
}

func TestApplyForStartedTripRejected(t *testing.T) {
	svc, trips, users, _, _, _ := newTripFixture()

	started := upcomingTrip()
	started.Status = domain.TripStatusOngoing
	trips.On("RefreshAndGet", mock.Anything, int64(3)).Return(started, nil)

	_, err := svc.Apply(context.Background(), 7, 3)

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Contains(t, de.Message, "cant apply for this trip")
	users.AssertNotCalled(t, "AssignTrip", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyTwiceConflicts(t *testing.T) {
	svc, trips, users, _, _, dispatcher := newTripFixture()

	trips.On("RefreshAndGet", mock.Anything, int64(3)).Return(upcomingTrip(), nil)
	users.On("AssignTrip", mock.Anything, int64(7), int64(3)).Return(false, nil)

	_, err := svc.Apply(context.Background(), 7, 3)

	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
	assert.Empty(t, dispatcher.published)
}

func TestCreateTripValidation(t *testing.T) {
	svc, _, _, _, _, _ := newTripFixture()

	_, err := svc.CreateTrip(context.Background(), CreateTripInput{Name: "", Destination: "Yazd"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.CreateTrip(context.Background(), CreateTripInput{
		Name:        "Desert Safari",
		Destination: "Yazd",
		StartDate:   time.Now().AddDate(0, 1, 5),
		EndDate:     time.Now().AddDate(0, 1, 0),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateTripDerivesStatusFromDates(t *testing.T) {
	svc, trips, _, _, _, _ := newTripFixture()

	trips.On("Create", mock.Anything, mock.MatchedBy(func(trip *domain.Trip) bool {
		return trip.Status == domain.TripStatusNotStarted
	})).Return(nil).Once()

	upcoming, err := svc.CreateTrip(context.Background(), CreateTripInput{
		Name:        "Desert Safari",
		Destination: "Yazd",
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 1, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusNotStarted, upcoming.Status)

	trips.On("Create", mock.Anything, mock.MatchedBy(func(trip *domain.Trip) bool {
		return trip.Status == domain.TripStatusEnded
	})).Return(nil).Once()

	finished, err := svc.CreateTrip(context.Background(), CreateTripInput{
		Name:        "Desert Safari",
		Destination: "Yazd",
		StartDate:   time.Now().AddDate(0, -1, -5),
		EndDate:     time.Now().AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusEnded, finished.Status)

	trips.AssertExpectations(t)
}

func TestUploadReceiptRequiresApplication(t *testing.T) {
	svc, _, users, receipts, _, _ := newTripFixture()

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)

	_, err := svc.UploadReceipt(context.Background(), 7, 3, UploadInput{
		Filename: "receipt.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("x"),
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	receipts.AssertNotCalled(t, "CreateForTrip", mock.Anything, mock.Anything)
}

func TestUploadReceiptForAppliedTrip(t *testing.T) {
	svc, _, users, receipts, store, _ := newTripFixture()

	tripID := int64(3)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, TripID: &tripID}, nil)
	store.On("Upload", mock.Anything, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return("http://localhost:8080/uploads/receipt.jpg", nil)
	receipts.On("CreateForTrip", mock.Anything, mock.AnythingOfType("*domain.PaymentReceipt")).Return(nil)

	receipt, err := svc.UploadReceipt(context.Background(), 7, 3, UploadInput{
		Filename: "receipt.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("x"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TripTypeNormal, receipt.TripType)
	require.NotNil(t, receipt.TripID)
	assert.Equal(t, tripID, *receipt.TripID)
}

func TestUploadImages(t *testing.T) {
	svc, trips, _, _, store, _ := newTripFixture()

	trip := upcomingTrip()
	trips.On("RefreshAndGet", mock.Anything, int64(3)).Return(trip, nil)
	store.On("Upload", mock.Anything, mock.AnythingOfType("string"), "image/png", mock.Anything).
		Return("http://localhost:8080/uploads/cover.png", nil)
	trips.On("SetImageCover", mock.Anything, int64(3), "http://localhost:8080/uploads/cover.png").Return(nil)
	trips.On("SetImages", mock.Anything, int64(3), mock.AnythingOfType("[]string")).Return(nil)

	cover := &UploadInput{Filename: "cover.png", ContentType: "image/png", Reader: strings.NewReader("c")}
	gallery := []UploadInput{
		{Filename: "a.png", ContentType: "image/png", Reader: strings.NewReader("a")},
		{Filename: "b.png", ContentType: "image/png", Reader: strings.NewReader("b")},
	}

	_, err := svc.UploadImages(context.Background(), 3, cover, gallery)

	require.NoError(t, err)
	trips.AssertCalled(t, "SetImageCover", mock.Anything, int64(3), mock.AnythingOfType("string"))
	trips.AssertCalled(t, "SetImages", mock.Anything, int64(3), mock.MatchedBy(func(urls []string) bool {
		return len(urls) == 2
	}))
}
