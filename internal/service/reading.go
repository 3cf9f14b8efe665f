package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/kahaaniverse/kahaani/internal/content"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/reader"
	"github.com/kahaaniverse/kahaani/internal/store"
)

// Progress is the reading summary shown on library cards
type Progress struct {
	Percentage int
	Label      string
	Started    bool
}

// notStarted is the summary for books without a usable progress record
var notStarted = Progress{Label: "Not started"}

// SummarizeProgress computes the percentage read against the page count of
// the given language.
func SummarizeProgress(book *domain.Book, record domain.ReadingProgress, lang domain.Language) Progress {
	if book == nil || record.CurrentPageNumber <= 0 {
		return notStarted
	}
	total := book.Bundle(lang).PageCount()
	if total == 0 {
		return notStarted
	}
	page := record.CurrentPageNumber
	if page > total {
		page = total
	}
	return Progress{
		Percentage: int(math.Round(float64(page) / float64(total) * 100)),
		Label:      fmt.Sprintf("Page %d of %d", page, total),
		Started:    true,
	}
}

// LibraryEntry is a library book joined with its catalog metadata and progress
type LibraryEntry struct {
	Book     domain.LibraryBook
	Metadata domain.BookMetadata
	Progress Progress
}

// BookmarkEntry is a catalog book with a stored bookmark
type BookmarkEntry struct {
	Metadata   domain.BookMetadata
	PageNumber int
}

// ReadingService connects the content provider, the durable store and
// reading sessions
type ReadingService struct {
	content domain.ContentProvider
	store   domain.Store
	logger  *slog.Logger
	opts    []reader.Option
}

// NewReadingService creates a new reading service. opts are applied to
// every session it opens.
func NewReadingService(
	provider domain.ContentProvider,
	st domain.Store,
	logger *slog.Logger,
	opts ...reader.Option,
) *ReadingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadingService{
		content: provider,
		store:   st,
		logger:  logger,
		opts:    opts,
	}
}

// Catalog returns the full catalog listing
func (s *ReadingService) Catalog(ctx context.Context) content.Catalog {
	return content.Catalog(s.content.GetCatalog(ctx))
}

// OpenBook resolves a book and starts a reading session for it
func (s *ReadingService) OpenBook(ctx context.Context, bookID string, opts ...reader.Option) (*reader.Session, error) {
	book, ok := s.content.GetBookByID(ctx, bookID)
	if !ok {
		s.logger.Warn("book not available", "bookID", bookID)
		return nil, fmt.Errorf("%w: %s", domain.ErrBookNotFound, bookID)
	}

	all := make([]reader.Option, 0, len(s.opts)+len(opts)+1)
	all = append(all, reader.WithLogger(s.logger))
	all = append(all, s.opts...)
	all = append(all, opts...)

	session, err := reader.Open(book, s.store, all...)
	if err != nil {
		s.logger.Error("failed to open book", "bookID", bookID, "error", err)
		return nil, err
	}
	return session, nil
}

// Library returns the books the reader has opened, in the order they were
// first opened. Books missing from the catalog keep their stored metadata.
func (s *ReadingService) Library(ctx context.Context) []LibraryEntry {
	library := s.store.GetLibrary()
	if len(library) == 0 {
		return nil
	}

	catalog := s.Catalog(ctx)
	lang := s.store.GetLanguagePreference()

	entries := make([]LibraryEntry, 0, len(library))
	for _, lb := range library {
		meta, ok := catalog.Find(lb.BookID)
		if !ok {
			meta = domain.BookMetadata{
				ID:     lb.BookID,
				Title:  lb.Title,
				Author: lb.Author,
				Cover:  lb.Cover,
			}
		}

		progress := notStarted
		if record, ok := store.FindProgress(s.store, lb.BookID); ok {
			book, _ := s.content.GetBookByID(ctx, lb.BookID)
			progress = SummarizeProgress(book, record, lang)
		}

		entries = append(entries, LibraryEntry{
			Book:     lb,
			Metadata: meta,
			Progress: progress,
		})
	}
	return entries
}

// Bookmarked returns catalog books with a stored bookmark, in catalog order
func (s *ReadingService) Bookmarked(ctx context.Context) []BookmarkEntry {
	bookmarks := s.store.GetBookmarks()
	if len(bookmarks) == 0 {
		return nil
	}

	var entries []BookmarkEntry
	for _, meta := range s.Catalog(ctx) {
		if page, ok := bookmarks[meta.ID]; ok && page > 0 {
			entries = append(entries, BookmarkEntry{Metadata: meta, PageNumber: page})
		}
	}
	return entries
}

// Latest returns up to n books, newest first. n <= 0 returns all of them.
func (s *ReadingService) Latest(ctx context.Context, n int) content.Catalog {
	latest := s.Catalog(ctx).Latest()
	if n > 0 && len(latest) > n {
		latest = latest[:n]
	}
	return latest
}

// ByGenre returns the catalog books of one genre
func (s *ReadingService) ByGenre(ctx context.Context, genre string) content.Catalog {
	return s.Catalog(ctx).ByGenre(genre)
}

// Genres returns the distinct catalog genres
func (s *ReadingService) Genres(ctx context.Context) []string {
	return s.Catalog(ctx).Genres()
}

// Search finds catalog books matching query
func (s *ReadingService) Search(ctx context.Context, query string) content.Catalog {
	results := s.Catalog(ctx).Search(query)
	s.logger.Debug("search", "query", query, "results", len(results))
	return results
}

// LanguagePreference returns the stored language preference
func (s *ReadingService) LanguagePreference() domain.Language {
	return s.store.GetLanguagePreference()
}

// Bookmark returns the stored bookmark page of a book
func (s *ReadingService) Bookmark(bookID string) (int, bool) {
	return store.GetBookmark(s.store, bookID)
}
