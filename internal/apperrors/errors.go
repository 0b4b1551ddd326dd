package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrPossessionNotFound indicates that no possession carries the given label.
	ErrPossessionNotFound = errors.New("possession not found")

	// ErrSnapshotNotFound indicates that no patrimony snapshot exists for a date.
	ErrSnapshotNotFound = errors.New("patrimony snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrDuplicateLabel indicates that a possession with the same label already exists.
	ErrDuplicateLabel = errors.New("a possession with this label already exists")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrievePossessions = errors.New("failed to retrieve possessions")
	ErrFailedToRetrievePossession  = errors.New("failed to retrieve possession")
	ErrFailedToCreatePossession    = errors.New("failed to create possession")
	ErrFailedToClosePossession     = errors.New("failed to close possession")
	ErrFailedToDeletePossession    = errors.New("failed to delete possession")

	ErrFailedToComputePatrimony = errors.New("failed to compute patrimony")
	ErrFailedToRetrieveHistory  = errors.New("failed to retrieve patrimony history")
	ErrFailedToRefreshSnapshot  = errors.New("failed to refresh patrimony snapshot")

	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that stored data cannot be decoded
	// (e.g., a malformed decimal or an owner that fails decryption).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
