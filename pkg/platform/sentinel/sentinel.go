package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: the record does not exist
//   - ErrConflict: a uniqueness constraint was hit (duplicate pending claim, profile already created)
//   - ErrInvalidState: the record exists but is in the wrong state for the write
//   - ErrLockTimeout: the per-family critical section could not be entered in time
//   - ErrUnavailable: a backing service is unreachable
//
// Validation failures never use these; they go straight to pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrLockTimeout  = errors.New("lock timeout")
	ErrUnavailable  = errors.New("unavailable")
)
