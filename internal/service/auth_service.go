package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/phoenix-adventures/trip-service/internal/auth"
	"github.com/phoenix-adventures/trip-service/internal/config"
	"github.com/phoenix-adventures/trip-service/internal/domain"
	"github.com/phoenix-adventures/trip-service/internal/events"
	"github.com/phoenix-adventures/trip-service/internal/repository"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// AuthService coordinates registration, login and password flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		dispatcher: dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// SignupInput describes the registration payload.
type SignupInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Signup creates a new traveler account and logs it in.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, string, time.Time, error) {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("please provide a valid email", nil)
	}
	if input.Password != input.PasswordConfirm {
		return nil, "", time.Time{}, apperrors.NewValidationError("passwords do not match", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("this email already has an account", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserSignedUp,
		Recipient: recipient(user),
		Payload:   events.UserSignedUpPayload{Email: user.Email},
	})
	return user, token, exp, nil
}

// Login authenticates a user and refreshes the last-login marker.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect email or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect email or password")
	}

	// Logging in reactivates a soft-deleted account within the grace window.
	if err := s.users.TouchLogin(ctx, user.Email); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ForgotPassword stores a hashed single-use reset token and emails the link.
func (s *AuthService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return err
	}

	rawToken := uuid.NewString()
	hashed := hashResetToken(rawToken)
	if err := s.users.SetResetToken(ctx, user.Email, hashed, time.Now().Add(s.resetTTL)); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventPasswordResetRequested,
		Recipient: recipient(user),
		Payload: events.PasswordResetRequestedPayload{
			ResetURL: baseURL + "/api/v1/users/resetPassword/" + rawToken,
		},
	})
	return nil
}

// ResetPassword redeems a reset token and sets the new password. The token is
// consumed and password_changed_at advances, invalidating outstanding JWTs.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, password, passwordConfirm string) (*domain.User, string, time.Time, error) {
	if password == "" || passwordConfirm == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("please provide your password and its confirmation", nil)
	}
	if password != passwordConfirm {
		return nil, "", time.Time{}, apperrors.NewValidationError("passwords do not match", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.users.ResetPassword(ctx, hashResetToken(rawToken), hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewValidationError("token is invalid or has expired", nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword, newPasswordConfirm string) (string, time.Time, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return "", time.Time{}, apperrors.NewValidationError("you entered a wrong password, try again", nil)
	}
	if newPassword != newPasswordConfirm {
		return "", time.Time{}, apperrors.NewValidationError("passwords do not match", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return "", time.Time{}, err
	}

	return s.issueToken(userID)
}

func (s *AuthService) issueToken(userID int64) (string, time.Time, error) {
	return s.tokenMgr.GenerateToken(userID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
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

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func recipient(user *domain.User) events.Recipient {
	return events.Recipient{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
	}
}
