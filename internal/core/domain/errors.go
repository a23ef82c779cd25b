package domain

import "errors"

var (
	ErrInvalidWindow     = errors.New("invalid booking window")
	ErrSlotTaken         = errors.New("slot is not available")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStorageFailure    = errors.New("storage failure")
)
