package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"testament/internal/estate/models"
	"testament/internal/estate/store/memory"
	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

type QuerySuite struct {
	suite.Suite
	store   *memory.Store
	queries *Service
	ctx     context.Context
}

func (s *QuerySuite) SetupTest() {
	s.store = memory.New()
	s.queries = New(s.store)
	s.ctx = context.Background()
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(QuerySuite))
}

func (s *QuerySuite) seedUser(name string) *models.User {
	user := &models.User{
		ID:        id.NewUserID(),
		Name:      name,
		Email:     name + "@example.com",
		CreatedAt: time.Now(),
	}
	s.Require().NoError(s.store.SaveUser(s.ctx, user))
	return user
}

func (s *QuerySuite) TestGetUser() {
	s.Run("returns CodeNotFound for unknown ID", func() {
		_, err := s.queries.GetUser(s.ctx, id.NewUserID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("returns the stored record", func() {
		user := s.seedUser("alice")
		found, err := s.queries.GetUser(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user.Name, found.Name)
	})

	s.Run("repeated reads return identical records", func() {
		user := s.seedUser("bob")
		first, err := s.queries.GetUser(s.ctx, user.ID)
		s.Require().NoError(err)
		second, err := s.queries.GetUser(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(first, second)
	})
}

func (s *QuerySuite) TestGetWill() {
	_, err := s.queries.GetWill(s.ctx, id.NewWillID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	will := models.NewWill(id.NewWillID(), id.NewUserID(), id.NewExecutorID(), time.Now())
	s.Require().NoError(s.store.SaveWill(s.ctx, will))

	found, err := s.queries.GetWill(s.ctx, will.ID)
	s.Require().NoError(err)
	s.Equal(will.ID, found.ID)
	s.NotNil(found.Assets)
	s.NotNil(found.Beneficiaries)
}

func (s *QuerySuite) TestGetAssetAndBeneficiary() {
	will := models.NewWill(id.NewWillID(), id.NewUserID(), id.NewExecutorID(), time.Now())
	s.Require().NoError(s.store.SaveWill(s.ctx, will))

	asset := models.NewAsset(id.NewAssetID(), will.ID, "House", 500000, time.Now())
	_, err := s.store.AttachAsset(s.ctx, will.ID, asset)
	s.Require().NoError(err)

	found, err := s.queries.GetAsset(s.ctx, asset.ID)
	s.Require().NoError(err)
	s.Equal(*asset, *found)

	_, err = s.queries.GetBeneficiary(s.ctx, id.NewBeneficiaryID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *QuerySuite) TestListUsers() {
	s.Run("fails with CodeEmptyCollection when nothing exists", func() {
		_, err := s.queries.ListUsers(s.ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeEmptyCollection))
	})

	s.Run("returns every record in insertion order", func() {
		first := s.seedUser("first")
		second := s.seedUser("second")

		users, err := s.queries.ListUsers(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(users, 2)
		s.Equal(first.ID, users[0].ID)
		s.Equal(second.ID, users[1].ID)
	})
}

func (s *QuerySuite) TestListExecutorsEmpty() {
	_, err := s.queries.ListExecutors(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeEmptyCollection))
}

func (s *QuerySuite) TestListWillsEmpty() {
	_, err := s.queries.ListWills(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeEmptyCollection))
}
