package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: stored object does not exist
//   - ErrUnavailable: engine or backing service temporarily unavailable
//   - ErrTimeout: collaborator did not answer in time
//   - ErrInvalidState: object in the wrong state for the operation
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrTimeout      = errors.New("timeout")
	ErrInvalidState = errors.New("invalid state")
)
