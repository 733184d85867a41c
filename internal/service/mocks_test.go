package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/phoenix-adventures/trip-service/internal/domain"
	"github.com/phoenix-adventures/trip-service/internal/events"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
		user.Active = true
		user.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, email *string) (*domain.User, error) {
	args := m.Called(ctx, id, firstName, lastName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepository) SetResetToken(ctx context.Context, email, hashedToken string, expiresAt time.Time) error {
	args := m.Called(ctx, email, hashedToken, expiresAt)
	return args.Error(0)
}

func (m *mockUserRepository) ResetPassword(ctx context.Context, hashedToken, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, hashedToken, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) TouchLogin(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockUserRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) AssignTrip(ctx context.Context, userID, tripID int64) (bool, error) {
	args := m.Called(ctx, userID, tripID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) PurgeInactive(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockTripRepository struct {
	mock.Mock
}

func (m *mockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	if args.Error(0) == nil {
		trip.ID = 1
		trip.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockTripRepository) RefreshAndGet(ctx context.Context, id int64) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *mockTripRepository) RefreshAndList(ctx context.Context) ([]domain.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trip), args.Error(1)
}

func (m *mockTripRepository) SetImageCover(ctx context.Context, id int64, coverURL string) error {
	args := m.Called(ctx, id, coverURL)
	return args.Error(0)
}

func (m *mockTripRepository) SetImages(ctx context.Context, id int64, imageURLs []string) error {
	args := m.Called(ctx, id, imageURLs)
	return args.Error(0)
}

type mockCustomizedTripRepository struct {
	mock.Mock
}

func (m *mockCustomizedTripRepository) Create(ctx context.Context, trip *domain.CustomizedTrip) error {
	args := m.Called(ctx, trip)
	if args.Error(0) == nil {
		trip.ID = 1
		trip.AdminResponse = domain.AdminResponsePending
		trip.UserResponse = domain.UserResponsePending
		trip.PaymentStatus = domain.PaymentStatusPending
		trip.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockCustomizedTripRepository) RefreshAndGet(ctx context.Context, id int64) (*domain.CustomizedTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomizedTrip), args.Error(1)
}

func (m *mockCustomizedTripRepository) GetWithRequester(ctx context.Context, id int64) (*domain.CustomizedTripWithRequester, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomizedTripWithRequester), args.Error(1)
}

func (m *mockCustomizedTripRepository) RefreshAndListPending(ctx context.Context) ([]domain.CustomizedTripWithRequester, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomizedTripWithRequester), args.Error(1)
}

func (m *mockCustomizedTripRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CustomizedTrip, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomizedTrip), args.Error(1)
}

func (m *mockCustomizedTripRepository) SetAdminResponse(ctx context.Context, id int64, price float64) (bool, error) {
	args := m.Called(ctx, id, price)
	return args.Bool(0), args.Error(1)
}

func (m *mockCustomizedTripRepository) Accept(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCustomizedTripRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCustomizedTripRepository) AddReceiptAndMarkPaid(ctx context.Context, receipt *domain.PaymentReceipt) (bool, error) {
	args := m.Called(ctx, receipt)
	if args.Bool(0) {
		receipt.ID = 1
		receipt.CreatedAt = time.Now()
	}
	return args.Bool(0), args.Error(1)
}

type mockReceiptRepository struct {
	mock.Mock
}

func (m *mockReceiptRepository) CreateForTrip(ctx context.Context, receipt *domain.PaymentReceipt) error {
	args := m.Called(ctx, receipt)
	if args.Error(0) == nil {
		receipt.ID = 1
		receipt.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockReceiptRepository) ListForTrip(ctx context.Context, tripID int64) ([]domain.ReceiptWithUploader, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptWithUploader), args.Error(1)
}

func (m *mockReceiptRepository) ListForCustomizedTrip(ctx context.Context, cusTripID int64) ([]domain.ReceiptWithUploader, error) {
	args := m.Called(ctx, cusTripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptWithUploader), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)
	return args.String(0), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
