// Package reader tracks a reader's position inside one open book.
//
// A Session is driven from a single event loop. Every accepted page change
// is written through to the durable store before the call returns; the
// in-memory position is never rolled back when a write fails.
package reader

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/kahaaniverse/kahaani/internal/store"
)

// DefaultTransitionWindow is how long navigation stays locked after a page flip
const DefaultTransitionWindow = 300 * time.Millisecond

// BookmarkAction reports what ToggleBookmark did
type BookmarkAction int

const (
	BookmarkNone BookmarkAction = iota
	BookmarkAdded
	BookmarkRemoved
)

// String returns a short name for logging
func (a BookmarkAction) String() string {
	switch a {
	case BookmarkAdded:
		return "added"
	case BookmarkRemoved:
		return "removed"
	default:
		return "none"
	}
}

// ToggleResult is returned by ToggleBookmark for user-facing notification
type ToggleResult struct {
	Action     BookmarkAction
	PageNumber int
}

// transitionState is the navigation lock. Transitioning has a single
// deadline; reaching it (or EndTransition) returns the session to Idle.
type transitionState int

const (
	stateIdle transitionState = iota
	stateTransitioning
)

// Session is the reading state of one open book.
type Session struct {
	book     *domain.Book
	store    domain.Store
	language domain.Language
	bundle   domain.LanguageBundle

	// pageIndex is 0-based and always inside bundle.Pages
	pageIndex int

	state      transitionState
	settleAt   time.Time
	window     time.Duration
	transition int // bumped on every accepted navigation

	now      func() time.Time
	observer domain.Observer
	logger   *slog.Logger
}

// Open starts a reading session for book.
// The initial page comes from the stored bookmark, the language from the
// stored preference. The book is added to the library on first open and a
// progress record is written for the starting page.
func Open(book *domain.Book, st domain.Store, opts ...Option) (*Session, error) {
	if st == nil {
		return nil, fmt.Errorf("reader: nil store")
	}
	if err := book.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		book:     book,
		store:    st,
		window:   DefaultTransitionWindow,
		now:      time.Now,
		observer: domain.NoOpObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.language = st.GetLanguagePreference().OrDefault()
	s.bundle = book.Bundle(s.language)
	if s.bundle.PageCount() == 0 {
		return nil, fmt.Errorf("%w: book %s has no pages for %s", domain.ErrInvalidBook, book.ID, s.language)
	}

	s.pageIndex = s.initialIndex()
	s.addToLibrary()
	s.writeProgress()

	s.logger.Info("opened book",
		"bookID", book.ID,
		"language", s.language,
		"page", s.pageIndex+1,
		"pages", s.bundle.PageCount())
	return s, nil
}

func (s *Session) initialIndex() int {
	page, ok := store.GetBookmark(s.store, s.book.ID)
	if !ok {
		return 0
	}
	index := max(0, page-1)
	if index >= s.bundle.PageCount() {
		s.invalidateBookmark(page)
		return 0
	}
	return index
}

func (s *Session) addToLibrary() {
	added, err := store.AddToLibrary(s.store, domain.LibraryBook{
		BookID:      s.book.ID,
		Title:       s.book.Title,
		Author:      s.book.Author,
		Cover:       s.book.Cover,
		FirstReadAt: s.now().UnixMilli(),
	})
	if err != nil {
		s.reportWriteFailure("library", err)
		return
	}
	if added {
		s.logger.Debug("added book to library", "bookID", s.book.ID)
	}
}

// mustInit panics when the session did not come from Open
func (s *Session) mustInit() {
	if s == nil || s.book == nil || s.store == nil {
		panic(domain.ErrSessionNotInitialized)
	}
}

// === Accessors ===

// Book returns the open book
func (s *Session) Book() *domain.Book {
	s.mustInit()
	return s.book
}

// Language returns the active content language
func (s *Session) Language() domain.Language {
	s.mustInit()
	return s.language
}

// Title returns the localized title, falling back to the book title
func (s *Session) Title() string {
	s.mustInit()
	if s.bundle.Title != "" {
		return s.bundle.Title
	}
	return s.book.Title
}

// PageIndex returns the 0-based current page index
func (s *Session) PageIndex() int {
	s.mustInit()
	return s.pageIndex
}

// PageCount returns the number of pages in the active language
func (s *Session) PageCount() int {
	s.mustInit()
	return s.bundle.PageCount()
}

// CurrentPage returns the page being read. false means the content is
// shorter than the index; nothing should render and navigation is disabled.
func (s *Session) CurrentPage() (domain.BookPage, bool) {
	s.mustInit()
	return s.bundle.Page(s.pageIndex)
}

// IsBookmarked reports whether the current page is the stored bookmark.
// It reads the store on every call so it reflects persisted state.
func (s *Session) IsBookmarked() bool {
	s.mustInit()
	page, ok := s.CurrentPage()
	if !ok {
		return false
	}
	stored, ok := store.GetBookmark(s.store, s.book.ID)
	return ok && stored == page.PageNumber
}

// IsTransitioning reports whether a page flip is still in progress
func (s *Session) IsTransitioning() bool {
	s.mustInit()
	s.settle()
	return s.state == stateTransitioning
}

// TransitionWindow returns how long each accepted navigation locks the session
func (s *Session) TransitionWindow() time.Duration {
	s.mustInit()
	return s.window
}

// Transition returns the sequence number of the latest accepted navigation.
// Hosts pass it back to EndTransition.
func (s *Session) Transition() int {
	s.mustInit()
	return s.transition
}

// EndTransition is the scheduled transition-to-Idle event for navigation
// seq. Hosts fire it once the window has elapsed; a seq from an earlier
// navigation is ignored.
func (s *Session) EndTransition(seq int) {
	s.mustInit()
	if seq != s.transition {
		return
	}
	s.state = stateIdle
}

// settle moves to Idle once the deadline passed, so a host that never
// fires EndTransition cannot lock navigation forever.
func (s *Session) settle() {
	if s.state == stateTransitioning && !s.now().Before(s.settleAt) {
		s.state = stateIdle
	}
}

// === Navigation ===

// Next moves forward one page. Returns false if nothing changed.
func (s *Session) Next() bool {
	s.mustInit()
	return s.moveTo(s.pageIndex + 1)
}

// Previous moves back one page. Returns false if nothing changed.
func (s *Session) Previous() bool {
	s.mustInit()
	return s.moveTo(s.pageIndex - 1)
}

// GoToPage jumps to a 0-based page index. Returns false if rejected.
func (s *Session) GoToPage(index int) bool {
	s.mustInit()
	return s.moveTo(index)
}

func (s *Session) moveTo(target int) bool {
	if _, ok := s.CurrentPage(); !ok {
		return false
	}
	if target < 0 || target >= s.bundle.PageCount() {
		return false
	}
	if s.IsTransitioning() {
		return false
	}

	s.pageIndex = target
	s.transition++
	s.state = stateTransitioning
	s.settleAt = s.now().Add(s.window)

	s.writeProgress()
	s.emit(domain.Event{Kind: domain.EventPageChanged, PageNumber: target + 1})
	return true
}

// ChangeLanguage switches content language and restarts at the first page.
// Page ids and counts differ across languages so the old index is not
// carried over. Returns false for unsupported codes.
func (s *Session) ChangeLanguage(lang domain.Language) bool {
	s.mustInit()
	if !lang.Valid() {
		return false
	}

	bundle := s.book.Bundle(lang)
	if bundle.PageCount() == 0 {
		s.logger.Warn("language has no pages", "bookID", s.book.ID, "language", lang)
		return false
	}

	s.language = lang
	s.bundle = bundle
	s.pageIndex = 0

	if err := s.store.SetLanguagePreference(lang); err != nil {
		s.reportWriteFailure("language_preference", err)
	}
	s.revalidateBookmark()
	s.writeProgress()

	s.logger.Info("changed language", "bookID", s.book.ID, "language", lang)
	s.emit(domain.Event{
		Kind:                  domain.EventLanguageChanged,
		PageNumber:            1,
		Language:              lang,
		CloseLanguageSelector: true,
	})
	return true
}

// === Bookmarks ===

// ToggleBookmark removes the bookmark if it points at the current page,
// otherwise sets it to the current page (replacing any other bookmark for
// this book).
func (s *Session) ToggleBookmark() ToggleResult {
	s.mustInit()
	page, ok := s.CurrentPage()
	if !ok {
		return ToggleResult{Action: BookmarkNone}
	}

	if s.IsBookmarked() {
		if err := store.ClearBookmark(s.store, s.book.ID); err != nil {
			s.reportWriteFailure("bookmarks", err)
		}
		s.emit(domain.Event{Kind: domain.EventBookmarkRemoved, PageNumber: page.PageNumber})
		return ToggleResult{Action: BookmarkRemoved, PageNumber: page.PageNumber}
	}

	if page.PageNumber < 1 || page.PageNumber > s.bundle.PageCount() {
		return ToggleResult{Action: BookmarkNone, PageNumber: page.PageNumber}
	}
	if err := store.SetBookmark(s.store, s.book.ID, page.PageNumber); err != nil {
		s.reportWriteFailure("bookmarks", err)
	}
	s.emit(domain.Event{Kind: domain.EventBookmarkAdded, PageNumber: page.PageNumber})
	return ToggleResult{Action: BookmarkAdded, PageNumber: page.PageNumber}
}

// revalidateBookmark clears a bookmark that no longer fits the active language
func (s *Session) revalidateBookmark() {
	page, ok := store.GetBookmark(s.store, s.book.ID)
	if ok && page > s.bundle.PageCount() {
		s.invalidateBookmark(page)
	}
}

func (s *Session) invalidateBookmark(page int) {
	s.logger.Info("clearing out-of-range bookmark",
		"bookID", s.book.ID,
		"bookmark", page,
		"language", s.language,
		"pages", s.bundle.PageCount())
	if err := store.ClearBookmark(s.store, s.book.ID); err != nil {
		s.reportWriteFailure("bookmarks", err)
	}
	s.emit(domain.Event{Kind: domain.EventBookmarkInvalidated, PageNumber: page})
}

// === Persistence ===

func (s *Session) writeProgress() {
	page, ok := s.CurrentPage()
	if !ok {
		return
	}
	err := store.UpsertProgress(s.store, domain.ReadingProgress{
		BookID:            s.book.ID,
		CurrentPageID:     page.ID,
		CurrentPageNumber: page.PageNumber,
		LastReadAt:        s.now().UnixMilli(),
	})
	if err != nil {
		s.reportWriteFailure("reading_progress", err)
	}
}

func (s *Session) reportWriteFailure(collection string, err error) {
	s.logger.Error("failed to persist reading state",
		"collection", collection,
		"bookID", s.book.ID,
		"error", err)
	s.emit(domain.Event{Kind: domain.EventStoreWriteFailed, Err: err})
}

func (s *Session) emit(e domain.Event) {
	e.BookID = s.book.ID
	if e.Kind != domain.EventLanguageChanged {
		e.Language = s.language
	}
	s.observer.OnEvent(e)
}
