package service

import (
	"context"

	"github.com/phoenix-adventures/trip-service/internal/domain"
	"github.com/phoenix-adventures/trip-service/internal/repository"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// UserService implements self-service account operations.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetMe returns the calling user's account.
func (s *UserService) GetMe(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateMeInput carries optional profile fields; nil pointers keep prior
// values.
type UpdateMeInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// UpdateMe merges the provided profile fields. Password changes go through
// the dedicated password flow, never through here.
func (s *UserService) UpdateMe(ctx context.Context, userID int64, input UpdateMeInput) (*domain.User, error) {
	if input.FirstName == nil && input.LastName == nil && input.Email == nil {
		return nil, apperrors.NewValidationError("no updatable fields provided", nil)
	}
	return s.users.UpdateProfile(ctx, userID, input.FirstName, input.LastName, input.Email)
}

// DeactivateMe soft-deletes the account; a later login within the retention
// window reactivates it.
func (s *UserService) DeactivateMe(ctx context.Context, userID int64) error {
	return s.users.Deactivate(ctx, userID)
}
