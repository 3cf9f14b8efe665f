package domain

// Store is the durable reading-state store.
// The four collections are independent namespaces. Getters never fail: a
// missing or unreadable value yields the empty default. Setters report the
// write error to the caller but never panic.
type Store interface {
	// === Bookmarks (bookId -> pageNumber) ===
	GetBookmarks() Bookmarks
	SetBookmarks(bookmarks Bookmarks) error

	// === Reading progress (one record per book) ===
	GetReadingProgress() []ReadingProgress
	SetReadingProgress(progress []ReadingProgress) error

	// === Library (books opened at least once) ===
	GetLibrary() []LibraryBook
	SetLibrary(library []LibraryBook) error

	// === Global language preference ===
	GetLanguagePreference() Language
	SetLanguagePreference(lang Language) error

	// Reset wipes every collection
	Reset() error

	Close() error
}
