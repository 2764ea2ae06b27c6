// Package service implements the will service: every write operation on the
// estate collections. It is the only component with cross-collection logic —
// it validates references before creating records and delegates the
// invariant-preserving dual writes to the store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"testament/internal/estate/models"
	"testament/internal/estate/store"
	"testament/internal/platform/metrics"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
	"testament/pkg/platform/sentinel"
)

// Service orchestrates record creation and will mutation.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures optional service dependencies.
type Option func(s *Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the creation-time source. Tests use it to pin
// timestamps; production uses the default time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a Service over the given store.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser validates, mints an identifier, stamps creation time, and
// stores a new user record.
func (s *Service) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	user, err := models.NewUser(id.NewUserID(), name, email, s.now())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store user")
	}
	s.metrics.RecordCreated("users")
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID.String())
	return user, nil
}

// CreateExecutor validates and stores a new executor record.
func (s *Service) CreateExecutor(ctx context.Context, name, contact string) (*models.Executor, error) {
	executor, err := models.NewExecutor(id.NewExecutorID(), name, contact, s.now())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.store.SaveExecutor(ctx, executor); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store executor")
	}
	s.metrics.RecordCreated("executors")
	s.logger.InfoContext(ctx, "executor created", "executor_id", executor.ID.String())
	return executor, nil
}

// CreateWill checks both references exist, then stores a will with empty
// association lists.
func (s *Service) CreateWill(ctx context.Context, userID id.UserID, executorID id.ExecutorID) (*models.Will, error) {
	if _, err := s.store.FindUser(ctx, userID); err != nil {
		return nil, s.mapLookupError(err, "user not found")
	}
	if _, err := s.store.FindExecutor(ctx, executorID); err != nil {
		return nil, s.mapLookupError(err, "executor not found")
	}

	will := models.NewWill(id.NewWillID(), userID, executorID, s.now())
	if err := s.store.SaveWill(ctx, will); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store will")
	}
	s.metrics.RecordCreated("wills")
	s.logger.InfoContext(ctx, "will created",
		"will_id", will.ID.String(),
		"user_id", userID.String(),
		"executor_id", executorID.String(),
	)
	return will, nil
}

// AddAsset mints an asset bound to the will and performs the atomic dual
// write through the store. The returned will carries the appended asset.
func (s *Service) AddAsset(ctx context.Context, willID id.WillID, name string, value uint64) (*models.Will, error) {
	asset := models.NewAsset(id.NewAssetID(), willID, name, value, s.now())
	will, err := s.store.AttachAsset(ctx, willID, asset)
	if err != nil {
		return nil, s.mapLookupError(err, "will not found")
	}
	s.metrics.RecordCreated("assets")
	s.metrics.RecordAttachment("asset")
	s.logger.InfoContext(ctx, "asset attached",
		"will_id", willID.String(),
		"asset_id", asset.ID.String(),
	)
	return will, nil
}

// AddBeneficiary mirrors AddAsset for beneficiary records.
func (s *Service) AddBeneficiary(ctx context.Context, willID id.WillID, name string, share uint64) (*models.Will, error) {
	beneficiary := models.NewBeneficiary(id.NewBeneficiaryID(), willID, name, share, s.now())
	will, err := s.store.AttachBeneficiary(ctx, willID, beneficiary)
	if err != nil {
		return nil, s.mapLookupError(err, "will not found")
	}
	s.metrics.RecordCreated("beneficiaries")
	s.metrics.RecordAttachment("beneficiary")
	s.logger.InfoContext(ctx, "beneficiary attached",
		"will_id", willID.String(),
		"beneficiary_id", beneficiary.ID.String(),
	)
	return will, nil
}

// AssignExecutor overwrites the will's executor reference. No history of
// prior assignments is kept.
func (s *Service) AssignExecutor(ctx context.Context, willID id.WillID, executorID id.ExecutorID) (*models.Will, error) {
	if _, err := s.store.FindExecutor(ctx, executorID); err != nil {
		return nil, s.mapLookupError(err, "executor not found")
	}
	will, err := s.store.SetExecutor(ctx, willID, executorID)
	if err != nil {
		return nil, s.mapLookupError(err, "will not found")
	}
	s.logger.InfoContext(ctx, "executor reassigned",
		"will_id", willID.String(),
		"executor_id", executorID.String(),
	)
	return will, nil
}

// mapLookupError translates store sentinels into coded domain errors.
func (s *Service) mapLookupError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "store failure")
}
