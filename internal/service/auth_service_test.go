package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-adventures/trip-service/internal/auth"
	"github.com/phoenix-adventures/trip-service/internal/config"
	"github.com/phoenix-adventures/trip-service/internal/domain"
	"github.com/phoenix-adventures/trip-service/internal/events"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

func newAuthFixture() (*AuthService, *mockUserRepository, *recordingDispatcher) {
	users := &mockUserRepository{}
	dispatcher := &recordingDispatcher{}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 10,
			BcryptCost:              4,
		},
	}
	return NewAuthService(cfg, users, dispatcher), users, dispatcher
}

func TestSignup(t *testing.T) {
	svc, users, dispatcher := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "sara@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, token, exp, err := svc.Signup(context.Background(), SignupInput{
		FirstName:       "Sara",
		LastName:        "Ahmadi",
		Email:           "sara@example.com",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "secret123"))
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventUserSignedUp, dispatcher.published[0].Type)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, users, _ := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "sara@example.com").
		Return(&domain.User{ID: 1, Email: "sara@example.com"}, nil)

	_, _, _, err := svc.Signup(context.Background(), SignupInput{
		FirstName:       "Sara",
		Email:           "sara@example.com",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Contains(t, de.Message, "already has an account")
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, _, err := svc.Signup(context.Background(), SignupInput{
		Email: "not-an-email", Password: "a", PasswordConfirm: "a",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, _, _, err = svc.Signup(context.Background(), SignupInput{
		Email: "sara@example.com", Password: "a", PasswordConfirm: "b",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newAuthFixture()

	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)

	users.On("GetByEmail", mock.Anything, "sara@example.com").
		Return(&domain.User{ID: 7, Email: "sara@example.com", PasswordHash: hash}, nil)
	users.On("TouchLogin", mock.Anything, "sara@example.com").Return(nil)

	user, token, _, err := svc.Login(context.Background(), "sara@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NotEmpty(t, token)
	users.AssertCalled(t, "TouchLogin", mock.Anything, "sara@example.com")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _ := newAuthFixture()

	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)

	users.On("GetByEmail", mock.Anything, "sara@example.com").
		Return(&domain.User{ID: 7, Email: "sara@example.com", PasswordHash: hash}, nil)

	_, _, _, err = svc.Login(context.Background(), "sara@example.com", "wrong")

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 401, de.HTTPStatus)
	assert.Equal(t, "incorrect email or password", de.Message)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, users, _ := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, pgx.ErrNoRows)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestForgotPasswordStoresHashedToken(t *testing.T) {
	svc, users, dispatcher := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "sara@example.com").
		Return(&domain.User{ID: 7, Email: "sara@example.com", FirstName: "Sara"}, nil)

	var storedHash string
	users.On("SetResetToken", mock.Anything, "sara@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil)

	err := svc.ForgotPassword(context.Background(), "sara@example.com", "http://localhost:8080")
	require.NoError(t, err)

	require.Len(t, dispatcher.published, 1)
	payload, ok := dispatcher.published[0].Payload.(events.PasswordResetRequestedPayload)
	require.True(t, ok)
	assert.Contains(t, payload.ResetURL, "/api/v1/users/resetPassword/")

	// The emailed token hashes to the stored value but never equals it.
	raw := payload.ResetURL[len("http://localhost:8080/api/v1/users/resetPassword/"):]
	assert.NotEqual(t, raw, storedHash)
	assert.Equal(t, hashResetToken(raw), storedHash)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc, users, _ := newAuthFixture()

	users.On("ResetPassword", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil, pgx.ErrNoRows)

	_, _, _, err := svc.ResetPassword(context.Background(), "bogus-token", "newpass1", "newpass1")

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Contains(t, de.Message, "invalid or has expired")
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newAuthFixture()

	hash, err := auth.HashPassword("oldpass1", 4)
	require.NoError(t, err)

	users.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.User{ID: 7, PasswordHash: hash}, nil)
	users.On("UpdatePassword", mock.Anything, int64(7), mock.AnythingOfType("string")).Return(nil)

	token, _, err := svc.ChangePassword(context.Background(), 7, "oldpass1", "newpass1", "newpass1")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, users, _ := newAuthFixture()

	hash, err := auth.HashPassword("oldpass1", 4)
	require.NoError(t, err)

	users.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.User{ID: 7, PasswordHash: hash}, nil)

	_, _, err = svc.ChangePassword(context.Background(), 7, "wrong", "newpass1", "newpass1")

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Contains(t, de.Message, "wrong password")
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
