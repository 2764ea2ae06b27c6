package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors without knowing
// which backing implementation produced them.
//
// These represent factual states about stored records, not validation
// failures:
// - ErrNotFound: record does not exist in the collection
// - ErrUnavailable: the backing store could not be reached
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
