package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", ErrNotFound, false},
		{"permission denied", ErrPermissionDenied, false},
		{"slot occupied", ErrSlotOccupied, false},
		{"capacity exceeded", ErrCapacityExceeded, false},
		{"duplicate request", ErrDuplicateRequest, false},
		{"invalid status", ErrInvalidStatus, false},
		{"invalid credentials", ErrInvalidCredentials, false},
		{"gorm record not found", gorm.ErrRecordNotFound, false},
		{"wrapped business error", errors.Join(errors.New("ctx"), ErrSlotOccupied), false},
		{"transient store error", errors.New("database is locked"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, expected %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWithRetry_BusinessErrorFailsFast(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		return ErrSlotOccupied
	})
	if !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("expected ErrSlotOccupied, got %v", err)
	}
	if calls != 1 {
		t.Errorf("business error retried %d times, expected 1 attempt", calls)
	}
}

func TestWithRetry_TransientErrorRecovers(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		if calls < 2 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected recovery, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestWithRetry_GivesUpAfterBoundedAttempts(t *testing.T) {
	calls := 0
	transient := errors.New("connection reset")
	err := WithRetry(func() error {
		calls++
		return transient
	})
	if !errors.Is(err, transient) {
		t.Errorf("expected the transient error to surface, got %v", err)
	}
	if calls != storeRetryAttempts {
		t.Errorf("expected %d attempts, got %d", storeRetryAttempts, calls)
	}
}
