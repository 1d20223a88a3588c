package storage

import "errors"

// Common record store errors
var (
	// ErrStorageClosed indicates that the store has been closed
	ErrStorageClosed = errors.New("record store is closed")
)
