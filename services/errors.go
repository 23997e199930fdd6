package services

import "errors"

// Common service-level errors
var (
	// Contact errors
	ErrNameRequired = errors.New("contact name is required")

	// ErrRefresh marks a snapshot reload that failed after the mutation
	// itself committed. Callers must treat it differently from a mutation
	// failure: the write is already in the store.
	ErrRefresh = errors.New("snapshot refresh failed")
)
