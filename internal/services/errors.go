package services

import "errors"

// Business-rule sentinels returned by the lifecycle services. Handlers map
// them to HTTP status codes; they are never retried.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSlotOccupied     = errors.New("slot is already occupied")
	ErrCapacityExceeded = errors.New("card capacity exceeded")
	ErrDuplicateRequest = errors.New("request already exists")
	ErrInvalidStatus    = errors.New("unknown task status")
)
