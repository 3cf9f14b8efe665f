package domain

import "context"

// ContentProvider resolves book content.
// Any transport or decode failure is reported as absent, never as an error.
type ContentProvider interface {
	// GetCatalog returns the lightweight listing; empty on failure
	GetCatalog(ctx context.Context) []BookMetadata

	// GetBookByID returns a complete, validated book or false
	GetBookByID(ctx context.Context, id string) (*Book, bool)
}
