package interfaces

import "errors"

var (
	// ErrAlreadyExists is returned by Create when the storage-level uniqueness
	// condition rejected the item.
	ErrAlreadyExists = errors.New("item already exists")

	// ErrConcurrentUpdate is returned when a guarded multi-item write lost
	// against a concurrent state change.
	ErrConcurrentUpdate = errors.New("concurrent update")
)
