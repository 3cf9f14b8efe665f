package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrBookNotFound indicates the content provider could not resolve a book
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidBook indicates book content violates page invariants
	ErrInvalidBook = errors.New("invalid book content")

	// ErrSessionNotInitialized is raised when a reading session is used without Open
	ErrSessionNotInitialized = errors.New("reading session not initialized")

	// ErrContentUnavailable indicates the content source could not be reached
	ErrContentUnavailable = errors.New("content source is unavailable")
)
