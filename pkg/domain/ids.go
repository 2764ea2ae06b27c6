// Package domain holds the typed identifiers shared across the estate
// packages. Each entity collection gets its own ID type so references cannot
// be crossed at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "testament/pkg/domain-errors"
)

type (
	// UserID identifies a testator record.
	UserID uuid.UUID
	// ExecutorID identifies an executor record.
	ExecutorID uuid.UUID
	// WillID identifies a will record.
	WillID uuid.UUID
	// AssetID identifies an asset record.
	AssetID uuid.UUID
	// BeneficiaryID identifies a beneficiary record.
	BeneficiaryID uuid.UUID
)

// NewUserID mints a fresh user identifier.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewExecutorID mints a fresh executor identifier.
func NewExecutorID() ExecutorID { return ExecutorID(uuid.New()) }

// NewWillID mints a fresh will identifier.
func NewWillID() WillID { return WillID(uuid.New()) }

// NewAssetID mints a fresh asset identifier.
func NewAssetID() AssetID { return AssetID(uuid.New()) }

// NewBeneficiaryID mints a fresh beneficiary identifier.
func NewBeneficiaryID() BeneficiaryID { return BeneficiaryID(uuid.New()) }

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id ExecutorID) String() string    { return uuid.UUID(id).String() }
func (id WillID) String() string        { return uuid.UUID(id).String() }
func (id AssetID) String() string       { return uuid.UUID(id).String() }
func (id BeneficiaryID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ExecutorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id WillID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id AssetID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id BeneficiaryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText serializes IDs as canonical UUID strings in JSON payloads.
func (id UserID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id ExecutorID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id WillID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id AssetID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id BeneficiaryID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := parseUUID(string(text))
	if err != nil {
		return err
	}
	*id = UserID(parsed)
	return nil
}

func (id *ExecutorID) UnmarshalText(text []byte) error {
	parsed, err := parseUUID(string(text))
	if err != nil {
		return err
	}
	*id = ExecutorID(parsed)
	return nil
}

func (id *WillID) UnmarshalText(text []byte) error {
	parsed, err := parseUUID(string(text))
	if err != nil {
		return err
	}
	*id = WillID(parsed)
	return nil
}

func (id *AssetID) UnmarshalText(text []byte) error {
	parsed, err := parseUUID(string(text))
	if err != nil {
		return err
	}
	*id = AssetID(parsed)
	return nil
}

func (id *BeneficiaryID) UnmarshalText(text []byte) error {
	parsed, err := parseUUID(string(text))
	if err != nil {
		return err
	}
	*id = BeneficiaryID(parsed)
	return nil
}

// ParseUserID parses and validates an identifier received at a trust boundary.
func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s)
	return UserID(parsed), err
}

// ParseExecutorID parses and validates an executor identifier.
func ParseExecutorID(s string) (ExecutorID, error) {
	parsed, err := parseUUID(s)
	return ExecutorID(parsed), err
}

// ParseWillID parses and validates a will identifier.
func ParseWillID(s string) (WillID, error) {
	parsed, err := parseUUID(s)
	return WillID(parsed), err
}

// ParseAssetID parses and validates an asset identifier.
func ParseAssetID(s string) (AssetID, error) {
	parsed, err := parseUUID(s)
	return AssetID(parsed), err
}

// ParseBeneficiaryID parses and validates a beneficiary identifier.
func ParseBeneficiaryID(s string) (BeneficiaryID, error) {
	parsed, err := parseUUID(s)
	return BeneficiaryID(parsed), err
}

// parseUUID enforces the shared invariant: identifiers must be valid,
// non-empty, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "identifier must not be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "identifier is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "identifier must not be the nil UUID")
	}
	return parsed, nil
}
