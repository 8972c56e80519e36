package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	storeRetryAttempts = 3
	storeRetryDelay    = 100 * time.Millisecond
)

// businessErrors are rejections that must surface immediately; retrying
// them cannot succeed.
var businessErrors = []error{
	ErrNotFound,
	ErrPermissionDenied,
	ErrSlotOccupied,
	ErrCapacityExceeded,
	ErrDuplicateRequest,
	ErrInvalidStatus,
	ErrInvalidCredentials,
	gorm.ErrRecordNotFound,
	gorm.ErrDuplicatedKey,
}

// IsRetryable reports whether an error looks like a transient store
// failure rather than a business-rule rejection.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return false
		}
	}
	return true
}

// WithRetry runs fn, retrying a bounded number of times on transient store
// errors. Business-rule rejections propagate on the first attempt.
func WithRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(storeRetryDelay)
		}
		err = fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}
