// Package query implements the read-only lookup surface. Reads bypass the
// will service and hit the store directly.
//
// Listing a collection with zero records fails with CodeEmptyCollection.
// That is a deliberate, documented contract — callers must treat "nothing
// was ever created" as a distinct case from a populated result — and tests
// assert it.
package query

import (
	"context"
	"errors"

	"testament/internal/estate/models"
	"testament/internal/estate/store"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/sentinel"
)

// Service answers read operations over the estate collections.
type Service struct {
	store store.Store
}

// New constructs a query service over the given store.
func New(st store.Store) *Service {
	return &Service{store: st}
}

// GetUser returns the user record or CodeNotFound.
func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, mapLookupError(err, "user not found")
	}
	return user, nil
}

// GetExecutor returns the executor record or CodeNotFound.
func (s *Service) GetExecutor(ctx context.Context, executorID id.ExecutorID) (*models.Executor, error) {
	executor, err := s.store.FindExecutor(ctx, executorID)
	if err != nil {
		return nil, mapLookupError(err, "executor not found")
	}
	return executor, nil
}

// GetWill returns the will record or CodeNotFound.
func (s *Service) GetWill(ctx context.Context, willID id.WillID) (*models.Will, error) {
	will, err := s.store.FindWill(ctx, willID)
	if err != nil {
		return nil, mapLookupError(err, "will not found")
	}
	return will, nil
}

// GetAsset returns the standalone asset record or CodeNotFound. It exposes
// the denormalized collection so callers can verify it never diverges from
// the will's embedded list.
func (s *Service) GetAsset(ctx context.Context, assetID id.AssetID) (*models.Asset, error) {
	asset, err := s.store.FindAsset(ctx, assetID)
	if err != nil {
		return nil, mapLookupError(err, "asset not found")
	}
	return asset, nil
}

// GetBeneficiary returns the standalone beneficiary record or CodeNotFound.
func (s *Service) GetBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error) {
	beneficiary, err := s.store.FindBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return nil, mapLookupError(err, "beneficiary not found")
	}
	return beneficiary, nil
}

// ListUsers returns every user record in insertion order, or
// CodeEmptyCollection when none exist.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	if len(users) == 0 {
		return nil, dErrors.New(dErrors.CodeEmptyCollection, "no users exist")
	}
	return users, nil
}

// ListExecutors returns every executor record, or CodeEmptyCollection.
func (s *Service) ListExecutors(ctx context.Context) ([]*models.Executor, error) {
	executors, err := s.store.ListExecutors(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list executors")
	}
	if len(executors) == 0 {
		return nil, dErrors.New(dErrors.CodeEmptyCollection, "no executors exist")
	}
	return executors, nil
}

// ListWills returns every will record, or CodeEmptyCollection.
func (s *Service) ListWills(ctx context.Context) ([]*models.Will, error) {
	wills, err := s.store.ListWills(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list wills")
	}
	if len(wills) == 0 {
		return nil, dErrors.New(dErrors.CodeEmptyCollection, "no wills exist")
	}
	return wills, nil
}

func mapLookupError(err error, notFoundMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "store failure")
}
