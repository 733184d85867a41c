package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/phoenix-adventures/trip-service/internal/repository"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// ResourceService backs the admin-facing generic CRUD endpoints for one
// resource kind.
type ResourceService struct {
	kind repository.ResourceKind
	repo repository.ResourceRepository
}

// NewResourceService builds a service bound to one resource kind.
func NewResourceService(kind repository.ResourceKind, repo repository.ResourceRepository) *ResourceService {
	return &ResourceService{kind: kind, repo: repo}
}

// Name returns the resource name for response envelopes.
func (s *ResourceService) Name() string {
	return s.kind.Name()
}

// List returns every record; an empty table yields an empty slice, not an
// error.
func (s *ResourceService) List(ctx context.Context) ([]map[string]any, error) {
	return s.repo.List(ctx)
}

// Get returns a single record by id.
func (s *ResourceService) Get(ctx context.Context, id int64) (map[string]any, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return record, nil
}

// Update merges the provided fields into the record. Credential and role
// fields are rejected before any SQL runs.
func (s *ResourceService) Update(ctx context.Context, id int64, fields map[string]any) (map[string]any, error) {
	record, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return record, nil
}

// Delete removes the record by id.
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapErr(err)
	}
	return nil
}

func (s *ResourceService) mapErr(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound(s.kind.Name(), nil)
	case errors.Is(err, repository.ErrProtectedField),
		errors.Is(err, repository.ErrUnknownField),
		errors.Is(err, repository.ErrNoFields):
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return err
}
