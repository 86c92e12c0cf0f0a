package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Reclaim Errors.

	// ErrDecode indicates a builder payload could not be parsed in its expected format.
	ErrDecode = errors.New("payload decode failed")

	// ErrUnresolvedReference indicates a URL or correlation tag maps to no media record.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrWrongType indicates a resolved identifier is not a media record.
	ErrWrongType = errors.New("not a media record")

	// ErrStillInUse indicates a medium is referenced by another record.
	ErrStillInUse = errors.New("still in use")

	// ErrStoreQuery indicates a content store call failed.
	ErrStoreQuery = errors.New("store query failed")
)
