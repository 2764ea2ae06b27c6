//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"testament/internal/estate/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
	"testament/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *containers.PostgresContainer
	store     *Store
	ctx       context.Context
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewPostgresContainer(s.T())
	s.store = New(s.container.Pool)
	s.Require().NoError(s.store.EnsureSchema(s.ctx))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.container.TruncateTables(s.ctx,
		"users", "executors", "wills", "assets", "beneficiaries"))
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) newWill() *models.Will {
	will := models.NewWill(id.NewWillID(), id.NewUserID(), id.NewExecutorID(), time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.SaveWill(s.ctx, will))
	return will
}

func (s *PostgresStoreSuite) TestUserRoundTrip() {
	user := &models.User{
		ID:        id.NewUserID(),
		Name:      "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(s.store.SaveUser(s.ctx, user))

	found, err := s.store.FindUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)
	s.Equal(user.Name, found.Name)
	s.True(user.CreatedAt.Equal(found.CreatedAt))

	_, err = s.store.FindUser(s.ctx, id.NewUserID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListUsersInsertionOrder() {
	names := []string{"first", "second", "third"}
	for _, name := range names {
		user := &models.User{
			ID:        id.NewUserID(),
			Name:      name,
			Email:     name + "@example.com",
			CreatedAt: time.Now().UTC(),
		}
		s.Require().NoError(s.store.SaveUser(s.ctx, user))
	}

	users, err := s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	for i, name := range names {
		s.Equal(name, users[i].Name)
	}
}

func (s *PostgresStoreSuite) TestWillRoundTrip() {
	will := s.newWill()

	found, err := s.store.FindWill(s.ctx, will.ID)
	s.Require().NoError(err)
	s.Equal(will.ID, found.ID)
	s.Equal(will.UserID, found.UserID)
	s.Equal(will.ExecutorID, found.ExecutorID)
	s.NotNil(found.Assets)
	s.Empty(found.Assets)
	s.NotNil(found.Beneficiaries)
	s.Empty(found.Beneficiaries)
	s.False(found.IsExecuted)
}

func (s *PostgresStoreSuite) TestAttachAsset() {
	s.Run("fails for unknown will without touching the standalone table", func() {
		asset := models.NewAsset(id.NewAssetID(), id.NewWillID(), "Car", 10000, time.Now().UTC())
		_, err := s.store.AttachAsset(s.ctx, asset.WillID, asset)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		assets, err := s.store.ListAssets(s.ctx)
		s.Require().NoError(err)
		s.Empty(assets)
	})

	s.Run("updates both views in one transaction", func() {
		will := s.newWill()
		asset := models.NewAsset(id.NewAssetID(), will.ID, "House", 500000,
			time.Now().UTC().Truncate(time.Microsecond))

		updated, err := s.store.AttachAsset(s.ctx, will.ID, asset)
		s.Require().NoError(err)
		s.Require().Len(updated.Assets, 1)

		stored, err := s.store.FindWill(s.ctx, will.ID)
		s.Require().NoError(err)
		s.Require().Len(stored.Assets, 1)
		s.Equal(asset.ID, stored.Assets[0].ID)
		s.Equal(asset.Name, stored.Assets[0].Name)
		s.Equal(asset.Value, stored.Assets[0].Value)

		standalone, err := s.store.FindAsset(s.ctx, asset.ID)
		s.Require().NoError(err)
		s.Equal(asset.ID, standalone.ID)
		s.Equal(will.ID, standalone.WillID)
	})

	s.Run("embedded list keeps insertion order", func() {
		will := s.newWill()
		for _, name := range []string{"House", "Car", "Boat"} {
			asset := models.NewAsset(id.NewAssetID(), will.ID, name, 1, time.Now().UTC())
			_, err := s.store.AttachAsset(s.ctx, will.ID, asset)
			s.Require().NoError(err)
		}

		stored, err := s.store.FindWill(s.ctx, will.ID)
		s.Require().NoError(err)
		s.Require().Len(stored.Assets, 3)
		s.Equal("House", stored.Assets[0].Name)
		s.Equal("Car", stored.Assets[1].Name)
		s.Equal("Boat", stored.Assets[2].Name)
	})
}

func (s *PostgresStoreSuite) TestAttachBeneficiary() {
	will := s.newWill()
	beneficiary := models.NewBeneficiary(id.NewBeneficiaryID(), will.ID, "Carol", 100,
		time.Now().UTC().Truncate(time.Microsecond))

	updated, err := s.store.AttachBeneficiary(s.ctx, will.ID, beneficiary)
	s.Require().NoError(err)
	s.Require().Len(updated.Beneficiaries, 1)

	standalone, err := s.store.FindBeneficiary(s.ctx, beneficiary.ID)
	s.Require().NoError(err)
	s.Equal(beneficiary.ID, standalone.ID)
	s.Equal(uint64(100), standalone.Share)
}

func (s *PostgresStoreSuite) TestSetExecutor() {
	will := s.newWill()
	asset := models.NewAsset(id.NewAssetID(), will.ID, "House", 500000, time.Now().UTC())
	_, err := s.store.AttachAsset(s.ctx, will.ID, asset)
	s.Require().NoError(err)

	replacement := id.NewExecutorID()
	updated, err := s.store.SetExecutor(s.ctx, will.ID, replacement)
	s.Require().NoError(err)
	s.Equal(replacement, updated.ExecutorID)
	s.Len(updated.Assets, 1)

	stored, err := s.store.FindWill(s.ctx, will.ID)
	s.Require().NoError(err)
	s.Equal(replacement, stored.ExecutorID)
	s.Len(stored.Assets, 1)
}

func (s *PostgresStoreSuite) TestConcurrentAttaches() {
	will := s.newWill()

	const workers = 8
	errs := make(chan error, workers)
	for range workers {
		go func() {
			asset := models.NewAsset(id.NewAssetID(), will.ID, "parallel", 1, time.Now().UTC())
			_, err := s.store.AttachAsset(s.ctx, will.ID, asset)
			errs <- err
		}()
	}
	for range workers {
		s.Require().NoError(<-errs)
	}

	stored, err := s.store.FindWill(s.ctx, will.ID)
	s.Require().NoError(err)
	s.Len(stored.Assets, workers, "row lock must serialize concurrent attaches")

	assets, err := s.store.ListAssets(s.ctx)
	s.Require().NoError(err)
	s.Len(assets, workers)
}
