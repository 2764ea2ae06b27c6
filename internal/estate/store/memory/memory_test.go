package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"testament/internal/estate/models"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newUser(name string) *models.User {
	return &models.User{
		ID:        id.NewUserID(),
		Name:      name,
		Email:     name + "@x.com",
		CreatedAt: time.Now(),
	}
}

func (s *MemoryStoreSuite) newWill() *models.Will {
	return models.NewWill(id.NewWillID(), id.NewUserID(), id.NewExecutorID(), time.Now())
}

func (s *MemoryStoreSuite) TestSaveAndFind() {
	s.Run("finds saved user", func() {
		user := s.newUser("alice")
		s.Require().NoError(s.store.SaveUser(s.ctx, user))

		found, err := s.store.FindUser(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user.Name, found.Name)
		s.Equal(user.Email, found.Email)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindUser(s.ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindExecutor(s.ctx, id.NewExecutorID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindWill(s.ctx, id.NewWillID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("stored records are isolated from caller mutation", func() {
		user := s.newUser("bob")
		s.Require().NoError(s.store.SaveUser(s.ctx, user))
		user.Name = "mutated"

		found, err := s.store.FindUser(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("bob", found.Name)
	})
}

func (s *MemoryStoreSuite) TestListInsertionOrder() {
	names := []string{"first", "second", "third"}
	for _, name := range names {
		s.Require().NoError(s.store.SaveUser(s.ctx, s.newUser(name)))
	}

	users, err := s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	for i, name := range names {
		s.Equal(name, users[i].Name)
	}
}

func (s *MemoryStoreSuite) TestListEmptyCollection() {
	users, err := s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *MemoryStoreSuite) TestAttachAsset() {
	s.Run("fails for unknown will", func() {
		asset := models.NewAsset(id.NewAssetID(), id.NewWillID(), "Car", 10000, time.Now())
		_, err := s.store.AttachAsset(s.ctx, asset.WillID, asset)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		assets, err := s.store.ListAssets(s.ctx)
		s.Require().NoError(err)
		s.Empty(assets, "failed attach must not touch the standalone collection")
	})

	s.Run("updates embedded list and standalone collection together", func() {
		will := s.newWill()
		s.Require().NoError(s.store.SaveWill(s.ctx, will))

		asset := models.NewAsset(id.NewAssetID(), will.ID, "Car", 10000, time.Now())
		updated, err := s.store.AttachAsset(s.ctx, will.ID, asset)
		s.Require().NoError(err)
		s.Require().Len(updated.Assets, 1)
		s.Equal(*asset, updated.Assets[0])

		standalone, err := s.store.FindAsset(s.ctx, asset.ID)
		s.Require().NoError(err)
		s.Equal(*asset, *standalone)

		stored, err := s.store.FindWill(s.ctx, will.ID)
		s.Require().NoError(err)
		s.Equal(updated.Assets, stored.Assets)
	})

	s.Run("preserves insertion order across attaches", func() {
		will := s.newWill()
		s.Require().NoError(s.store.SaveWill(s.ctx, will))

		for _, name := range []string{"House", "Car", "Boat"} {
			asset := models.NewAsset(id.NewAssetID(), will.ID, name, 1, time.Now())
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

func (s *MemoryStoreSuite) TestAttachBeneficiary() {
	will := s.newWill()
	s.Require().NoError(s.store.SaveWill(s.ctx, will))

	beneficiary := models.NewBeneficiary(id.NewBeneficiaryID(), will.ID, "Carol", 100, time.Now())
	updated, err := s.store.AttachBeneficiary(s.ctx, will.ID, beneficiary)
	s.Require().NoError(err)
	s.Require().Len(updated.Beneficiaries, 1)

	standalone, err := s.store.FindBeneficiary(s.ctx, beneficiary.ID)
	s.Require().NoError(err)
	s.Equal(updated.Beneficiaries[0], *standalone)
}

func (s *MemoryStoreSuite) TestSetExecutor() {
	will := s.newWill()
	s.Require().NoError(s.store.SaveWill(s.ctx, will))

	asset := models.NewAsset(id.NewAssetID(), will.ID, "House", 500000, time.Now())
	_, err := s.store.AttachAsset(s.ctx, will.ID, asset)
	s.Require().NoError(err)

	replacement := id.NewExecutorID()
	updated, err := s.store.SetExecutor(s.ctx, will.ID, replacement)
	s.Require().NoError(err)

	s.Equal(replacement, updated.ExecutorID)
	s.Equal(will.CreatedAt, updated.CreatedAt)
	s.Len(updated.Assets, 1, "reassignment must not touch assets")
	s.Equal(will.UserID, updated.UserID)
}

func (s *MemoryStoreSuite) TestRepeatedReadsAreIdentical() {
	will := s.newWill()
	s.Require().NoError(s.store.SaveWill(s.ctx, will))

	first, err := s.store.FindWill(s.ctx, will.ID)
	s.Require().NoError(err)
	second, err := s.store.FindWill(s.ctx, will.ID)
	s.Require().NoError(err)
	s.Equal(first, second)
}
