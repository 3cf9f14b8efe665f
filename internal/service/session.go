package service

import (
	"log/slog"

	"github.com/kahaaniverse/kahaani/internal/domain"
)

// cacheClearer is implemented by content providers that cache documents
type cacheClearer interface {
	ClearCache()
}

// SessionService manages user session operations
type SessionService struct {
	store   domain.Store
	content domain.ContentProvider
	logger  *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(st domain.Store, provider domain.ContentProvider, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{store: st, content: provider, logger: logger}
}

// Reset clears bookmarks, progress, library and language preference, and
// drops any cached book content
func (s *SessionService) Reset() error {
	if err := s.store.Reset(); err != nil {
		s.logger.Error("failed to reset store", "error", err)
		return err
	}

	if c, ok := s.content.(cacheClearer); ok {
		c.ClearCache()
	}

	s.logger.Info("reading data reset")
	return nil
}
