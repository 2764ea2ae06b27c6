// Package memory provides the in-memory implementation of the estate store.
// It is the default backing for development and tests: five ordered
// collections guarded by a single mutex, which serializes every write and
// makes the attach dual-writes trivially atomic.
package memory

import (
	"context"
	"sync"

	"testament/internal/estate/models"
	"testament/internal/estate/store"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
)

// Compile-time contract assertion.
var _ store.Store = (*Store)(nil)

// collection is an ordered mapping from identifier to record. Iteration
// follows insertion order and stays stable within a run.
type collection[K comparable, V any] struct {
	byID  map[K]V
	order []K
}

func newCollection[K comparable, V any]() collection[K, V] {
	return collection[K, V]{byID: make(map[K]V)}
}

func (c *collection[K, V]) put(key K, value V) {
	if _, exists := c.byID[key]; !exists {
		c.order = append(c.order, key)
	}
	c.byID[key] = value
}

func (c *collection[K, V]) values() []V {
	out := make([]V, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.byID[key])
	}
	return out
}

// Store keeps all five collections behind one lock. Records are copied on
// the way in and out so callers can never mutate stored state in place.
type Store struct {
	mu            sync.RWMutex
	users         collection[id.UserID, *models.User]
	executors     collection[id.ExecutorID, *models.Executor]
	wills         collection[id.WillID, *models.Will]
	assets        collection[id.AssetID, *models.Asset]
	beneficiaries collection[id.BeneficiaryID, *models.Beneficiary]
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		users:         newCollection[id.UserID, *models.User](),
		executors:     newCollection[id.ExecutorID, *models.Executor](),
		wills:         newCollection[id.WillID, *models.Will](),
		assets:        newCollection[id.AssetID, *models.Asset](),
		beneficiaries: newCollection[id.BeneficiaryID, *models.Beneficiary](),
	}
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users.put(user.ID, &copied)
	return nil
}

func (s *Store) FindUser(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users.byID[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Store) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*models.User, 0, len(s.users.order))
	for _, user := range s.users.values() {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (s *Store) SaveExecutor(_ context.Context, executor *models.Executor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *executor
	s.executors.put(executor.ID, &copied)
	return nil
}

func (s *Store) FindExecutor(_ context.Context, executorID id.ExecutorID) (*models.Executor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	executor, ok := s.executors.byID[executorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *executor
	return &copied, nil
}

func (s *Store) ListExecutors(_ context.Context) ([]*models.Executor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	executors := make([]*models.Executor, 0, len(s.executors.order))
	for _, executor := range s.executors.values() {
		copied := *executor
		executors = append(executors, &copied)
	}
	return executors, nil
}

func (s *Store) SaveWill(_ context.Context, will *models.Will) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wills.put(will.ID, copyWill(will))
	return nil
}

func (s *Store) FindWill(_ context.Context, willID id.WillID) (*models.Will, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	will, ok := s.wills.byID[willID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyWill(will), nil
}

func (s *Store) ListWills(_ context.Context) ([]*models.Will, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wills := make([]*models.Will, 0, len(s.wills.order))
	for _, will := range s.wills.values() {
		wills = append(wills, copyWill(will))
	}
	return wills, nil
}

// AttachAsset performs the invariant-preserving dual write: the embedded
// list append and the standalone insert happen under one lock acquisition,
// so no reader sees one without the other.
func (s *Store) AttachAsset(_ context.Context, willID id.WillID, asset *models.Asset) (*models.Will, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	will, ok := s.wills.byID[willID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	will.Assets = append(will.Assets, *asset)
	copied := *asset
	s.assets.put(asset.ID, &copied)
	return copyWill(will), nil
}

// AttachBeneficiary mirrors AttachAsset for beneficiary records.
func (s *Store) AttachBeneficiary(_ context.Context, willID id.WillID, beneficiary *models.Beneficiary) (*models.Will, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	will, ok := s.wills.byID[willID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	will.Beneficiaries = append(will.Beneficiaries, *beneficiary)
	copied := *beneficiary
	s.beneficiaries.put(beneficiary.ID, &copied)
	return copyWill(will), nil
}

func (s *Store) SetExecutor(_ context.Context, willID id.WillID, executorID id.ExecutorID) (*models.Will, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	will, ok := s.wills.byID[willID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	will.ExecutorID = executorID
	return copyWill(will), nil
}

func (s *Store) FindAsset(_ context.Context, assetID id.AssetID) (*models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets.byID[assetID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *asset
	return &copied, nil
}

func (s *Store) ListAssets(_ context.Context) ([]*models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assets := make([]*models.Asset, 0, len(s.assets.order))
	for _, asset := range s.assets.values() {
		copied := *asset
		assets = append(assets, &copied)
	}
	return assets, nil
}

func (s *Store) FindBeneficiary(_ context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	beneficiary, ok := s.beneficiaries.byID[beneficiaryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *beneficiary
	return &copied, nil
}

func (s *Store) ListBeneficiaries(_ context.Context) ([]*models.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	beneficiaries := make([]*models.Beneficiary, 0, len(s.beneficiaries.order))
	for _, beneficiary := range s.beneficiaries.values() {
		copied := *beneficiary
		beneficiaries = append(beneficiaries, &copied)
	}
	return beneficiaries, nil
}

// copyWill deep-copies a will so stored slices are never aliased by callers.
func copyWill(will *models.Will) *models.Will {
	copied := *will
	copied.Assets = make([]models.Asset, len(will.Assets))
	copy(copied.Assets, will.Assets)
	copied.Beneficiaries = make([]models.Beneficiary, len(will.Beneficiaries))
	copy(copied.Beneficiaries, will.Beneficiaries)
	return &copied
}
