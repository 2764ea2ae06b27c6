// Package models defines the five estate-planning record shapes and their
// construction invariants. Records are create-only: after construction the
// only mutable pieces are a Will's embedded lists and its executor reference,
// and both mutations go through the store so the denormalized views stay in
// sync.
package models

import (
	"strings"
	"time"

	id "testament/pkg/domain"
	dErrors "testament/pkg/domain-errors"
)

// User is a testator record.
//
// Invariants:
//   - Name and Email are non-blank
//   - ID and CreatedAt are immutable after construction
type User struct {
	ID        id.UserID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Executor is a record for the party administering a will. Authorization is
// by convention only; nothing here enforces it.
type Executor struct {
	ID        id.ExecutorID `json:"id"`
	Name      string        `json:"name"`
	Contact   string        `json:"contact"`
	CreatedAt time.Time     `json:"created_at"`
}

// Asset belongs to exactly one will. It is stored both embedded in the will
// record and as a standalone record in the assets collection; the two copies
// must never diverge.
type Asset struct {
	ID        id.AssetID `json:"id"`
	WillID    id.WillID  `json:"will_id"`
	Name      string     `json:"name"`
	Value     uint64     `json:"value"`
	CreatedAt time.Time  `json:"created_at"`
}

// Beneficiary belongs to exactly one will. Share is an unvalidated weight;
// shares are not normalized and never summed.
type Beneficiary struct {
	ID        id.BeneficiaryID `json:"id"`
	WillID    id.WillID        `json:"will_id"`
	Name      string           `json:"name"`
	Share     uint64           `json:"share"`
	CreatedAt time.Time        `json:"created_at"`
}

// Will binds a user to an executor and owns its assets and beneficiaries.
//
// Invariants:
//   - UserID and ExecutorID reference existing records at creation time
//   - Assets and Beneficiaries equal, in insertion order, the standalone
//     records whose WillID matches this will
//   - IsExecuted is false; no operation transitions it
type Will struct {
	ID            id.WillID     `json:"id"`
	UserID        id.UserID     `json:"user_id"`
	ExecutorID    id.ExecutorID `json:"executor_id"`
	Assets        []Asset       `json:"assets"`
	Beneficiaries []Beneficiary `json:"beneficiaries"`
	CreatedAt     time.Time     `json:"created_at"`
	IsExecuted    bool          `json:"is_executed"`
}

// NewUser validates and constructs a User.
func NewUser(userID id.UserID, name, email string, now time.Time) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user name cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user email cannot be empty")
	}
	return &User{
		ID:        userID,
		Name:      name,
		Email:     email,
		CreatedAt: now,
	}, nil
}

// NewExecutor validates and constructs an Executor.
func NewExecutor(executorID id.ExecutorID, name, contact string, now time.Time) (*Executor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "executor name cannot be empty")
	}
	if strings.TrimSpace(contact) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "executor contact cannot be empty")
	}
	return &Executor{
		ID:        executorID,
		Name:      name,
		Contact:   contact,
		CreatedAt: now,
	}, nil
}

// NewWill constructs a Will with empty association lists. Reference checks
// against the user and executor collections happen in the service, which is
// the only place that can see all collections.
func NewWill(willID id.WillID, userID id.UserID, executorID id.ExecutorID, now time.Time) *Will {
	return &Will{
		ID:            willID,
		UserID:        userID,
		ExecutorID:    executorID,
		Assets:        []Asset{},
		Beneficiaries: []Beneficiary{},
		CreatedAt:     now,
		IsExecuted:    false,
	}
}

// NewAsset constructs an Asset bound to a will. Name is intentionally not
// validated for emptiness; only user and executor creation reject blank text.
func NewAsset(assetID id.AssetID, willID id.WillID, name string, value uint64, now time.Time) *Asset {
	return &Asset{
		ID:        assetID,
		WillID:    willID,
		Name:      name,
		Value:     value,
		CreatedAt: now,
	}
}

// NewBeneficiary constructs a Beneficiary bound to a will.
func NewBeneficiary(beneficiaryID id.BeneficiaryID, willID id.WillID, name string, share uint64, now time.Time) *Beneficiary {
	return &Beneficiary{
		ID:        beneficiaryID,
		WillID:    willID,
		Name:      name,
		Share:     share,
		CreatedAt: now,
	}
}
