package store

import "github.com/kahaaniverse/kahaani/internal/domain"

// Record helpers operate on any domain.Store. Each one is a
// read-modify-write of a single collection.

// GetBookmark returns the bookmarked page number for a book
func GetBookmark(s domain.Store, bookID string) (int, bool) {
	page, ok := s.GetBookmarks()[bookID]
	if !ok || page <= 0 {
		return 0, false
	}
	return page, true
}

// SetBookmark stores the single bookmark for a book, replacing any previous one
func SetBookmark(s domain.Store, bookID string, pageNumber int) error {
	bookmarks := s.GetBookmarks()
	bookmarks[bookID] = pageNumber
	return s.SetBookmarks(bookmarks)
}

// ClearBookmark removes the bookmark for a book
func ClearBookmark(s domain.Store, bookID string) error {
	bookmarks := s.GetBookmarks()
	if _, ok := bookmarks[bookID]; !ok {
		return nil
	}
	delete(bookmarks, bookID)
	return s.SetBookmarks(bookmarks)
}

// UpsertProgress replaces the record with the same BookID or appends one.
// Linear scan: the collection holds one record per book ever opened.
func UpsertProgress(s domain.Store, record domain.ReadingProgress) error {
	all := s.GetReadingProgress()
	replaced := false
	for i := range all {
		if all[i].BookID == record.BookID {
			all[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, record)
	}
	return s.SetReadingProgress(all)
}

// FindProgress returns the progress record for a book
func FindProgress(s domain.Store, bookID string) (domain.ReadingProgress, bool) {
	for _, p := range s.GetReadingProgress() {
		if p.BookID == bookID {
			return p, true
		}
	}
	return domain.ReadingProgress{}, false
}

// AddToLibrary inserts entry if no record exists for its book.
// Returns true when a record was written.
func AddToLibrary(s domain.Store, entry domain.LibraryBook) (bool, error) {
	library := s.GetLibrary()
	for _, b := range library {
		if b.BookID == entry.BookID {
			return false, nil
		}
	}
	if err := s.SetLibrary(append(library, entry)); err != nil {
		return false, err
	}
	return true, nil
}
