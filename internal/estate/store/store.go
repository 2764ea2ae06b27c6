// Package store declares the persistence port for the five estate
// collections. Implementations (memory, postgres) must serialize writes so
// that the dual-write performed by AttachAsset/AttachBeneficiary is atomic:
// no reader may ever observe a will's embedded list out of sync with the
// standalone collection.
//
// Stores report absence with sentinel.ErrNotFound and return empty slices
// for empty collections; the "empty is an error" query contract lives in the
// query layer, not here.
package store

import (
	"context"

	"testament/internal/estate/models"
	id "testament/pkg/domain"
)

// Store persists the five estate collections. One implementation instance
// backs all five so cross-collection writes serialize on a single resource.
type Store interface {
	SaveUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, userID id.UserID) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	SaveExecutor(ctx context.Context, executor *models.Executor) error
	FindExecutor(ctx context.Context, executorID id.ExecutorID) (*models.Executor, error)
	ListExecutors(ctx context.Context) ([]*models.Executor, error)

	SaveWill(ctx context.Context, will *models.Will) error
	FindWill(ctx context.Context, willID id.WillID) (*models.Will, error)
	ListWills(ctx context.Context) ([]*models.Will, error)

	// AttachAsset appends the asset to the will's embedded list and inserts
	// the standalone record as one atomic unit, returning the updated will.
	AttachAsset(ctx context.Context, willID id.WillID, asset *models.Asset) (*models.Will, error)

	// AttachBeneficiary mirrors AttachAsset for beneficiary records.
	AttachBeneficiary(ctx context.Context, willID id.WillID, beneficiary *models.Beneficiary) (*models.Will, error)

	// SetExecutor overwrites the will's executor reference and nothing else.
	SetExecutor(ctx context.Context, willID id.WillID, executorID id.ExecutorID) (*models.Will, error)

	// Read side of the denormalized collections. Writes go through the
	// attach operations only.
	FindAsset(ctx context.Context, assetID id.AssetID) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	FindBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error)
	ListBeneficiaries(ctx context.Context) ([]*models.Beneficiary, error)
}
