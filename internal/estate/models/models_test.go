package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

func TestNewUser_Invariants(t *testing.T) {
	now := time.Now()

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewUser(id.NewUserID(), "", "alice@x.com", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects whitespace-only email", func(t *testing.T) {
		_, err := NewUser(id.NewUserID(), "Alice", "   ", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("stamps creation time once", func(t *testing.T) {
		user, err := NewUser(id.NewUserID(), "Alice", "alice@x.com", now)
		require.NoError(t, err)
		assert.Equal(t, now, user.CreatedAt)
	})
}

func TestNewExecutor_Invariants(t *testing.T) {
	now := time.Now()

	t.Run("rejects blank fields", func(t *testing.T) {
		_, err := NewExecutor(id.NewExecutorID(), " ", "bob@x.com", now)
		require.Error(t, err)
		_, err = NewExecutor(id.NewExecutorID(), "Bob", "", now)
		require.Error(t, err)
	})

	t.Run("constructs with valid fields", func(t *testing.T) {
		executor, err := NewExecutor(id.NewExecutorID(), "Bob", "bob@x.com", now)
		require.NoError(t, err)
		assert.Equal(t, "Bob", executor.Name)
	})
}

func TestNewWill_StartsEmptyAndUnexecuted(t *testing.T) {
	will := NewWill(id.NewWillID(), id.NewUserID(), id.NewExecutorID(), time.Now())

	assert.NotNil(t, will.Assets)
	assert.Empty(t, will.Assets)
	assert.NotNil(t, will.Beneficiaries)
	assert.Empty(t, will.Beneficiaries)
	assert.False(t, will.IsExecuted)
}

// Asset and beneficiary names are deliberately not validated: only user and
// executor creation reject blank text.
func TestNewAsset_AcceptsBlankName(t *testing.T) {
	asset := NewAsset(id.NewAssetID(), id.NewWillID(), "", 0, time.Now())
	assert.Equal(t, "", asset.Name)
	assert.Equal(t, uint64(0), asset.Value)
}

func TestNewBeneficiary_ShareUnvalidated(t *testing.T) {
	beneficiary := NewBeneficiary(id.NewBeneficiaryID(), id.NewWillID(), "Carol", 10_000_000, time.Now())
	assert.Equal(t, uint64(10_000_000), beneficiary.Share)
}
