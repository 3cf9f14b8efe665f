package domain

import (
	"fmt"
	"strconv"
)

// BookPage is a single page of a book in one language
type BookPage struct {
	ID         string `json:"id" yaml:"id"`
	Content    string `json:"content" yaml:"content"`
	PageNumber int    `json:"pageNumber" yaml:"pageNumber"` // 1-based, equals index+1
}

// LanguageBundle holds the localized content of a book
type LanguageBundle struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Pages       []BookPage `json:"pages" yaml:"pages"`
}

// PageCount returns the number of pages in the bundle
func (b LanguageBundle) PageCount() int {
	return len(b.Pages)
}

// Page returns the page at a 0-based index
func (b LanguageBundle) Page(index int) (BookPage, bool) {
	if index < 0 || index >= len(b.Pages) {
		return BookPage{}, false
	}
	return b.Pages[index], true
}

// Book is the full content of a book including every language variant.
// Books are immutable once resolved by a ContentProvider.
type Book struct {
	ID          string                      `json:"id" yaml:"id"`
	Title       string                      `json:"title" yaml:"title"`
	Author      string                      `json:"author" yaml:"author"`
	Cover       string                      `json:"cover" yaml:"cover"`
	Description string                      `json:"description" yaml:"description"`
	Genre       string                      `json:"genre" yaml:"genre"`
	Pages       []BookPage                  `json:"pages" yaml:"pages"`
	Languages   map[Language]LanguageBundle `json:"languages" yaml:"languages"`
}

// Bundle resolves the content for a language.
// Fallback order: the requested language, the default language, the
// book's own page sequence, then the first supported language with pages.
func (b *Book) Bundle(lang Language) LanguageBundle {
	if bundle, ok := b.Languages[lang]; ok {
		return bundle
	}
	if bundle, ok := b.Languages[DefaultLanguage]; ok {
		return bundle
	}
	if len(b.Pages) == 0 {
		for _, l := range supportedLanguages {
			if bundle, ok := b.Languages[l]; ok && bundle.PageCount() > 0 {
				return bundle
			}
		}
	}
	return LanguageBundle{
		Title:       b.Title,
		Description: b.Description,
		Pages:       b.Pages,
	}
}

// Metadata returns the lightweight catalog view of the book
func (b *Book) Metadata() BookMetadata {
	return BookMetadata{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Cover:       b.Cover,
		Description: b.Description,
		Genre:       b.Genre,
	}
}

// Validate checks the page invariants of every language bundle.
// Errors wrap ErrInvalidBook.
func (b *Book) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil book", ErrInvalidBook)
	}
	if b.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidBook)
	}
	if len(b.Languages) == 0 {
		if err := validatePages(b.Pages); err != nil {
			return fmt.Errorf("%w: book %s: %v", ErrInvalidBook, b.ID, err)
		}
		return nil
	}
	if len(b.Pages) > 0 {
		if err := validatePages(b.Pages); err != nil {
			return fmt.Errorf("%w: book %s: %v", ErrInvalidBook, b.ID, err)
		}
	}
	for lang, bundle := range b.Languages {
		if !lang.Valid() {
			return fmt.Errorf("%w: book %s: unsupported language %q", ErrInvalidBook, b.ID, lang)
		}
		if err := validatePages(bundle.Pages); err != nil {
			return fmt.Errorf("%w: book %s (%s): %v", ErrInvalidBook, b.ID, lang, err)
		}
	}
	return nil
}

func validatePages(pages []BookPage) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages")
	}
	seen := make(map[string]struct{}, len(pages))
	for i, p := range pages {
		if p.ID == "" {
			return fmt.Errorf("page %d has no id", i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate page id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.PageNumber != i+1 {
			return fmt.Errorf("page %q numbered %d at position %d", p.ID, p.PageNumber, i+1)
		}
	}
	return nil
}

// BookMetadata is the catalog listing entry for a book
type BookMetadata struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"`
	Cover       string `json:"cover" yaml:"cover"`
	Description string `json:"description" yaml:"description"`
	Genre       string `json:"genre" yaml:"genre"`
}

// NumericID returns the id as a number for "latest" ordering (-1 if not numeric)
func (m BookMetadata) NumericID() int {
	n, err := strconv.Atoi(m.ID)
	if err != nil {
		return -1
	}
	return n
}

// ReadingProgress is the last read position of a book.
// At most one record exists per BookID.
type ReadingProgress struct {
	BookID            string `json:"bookId"`
	CurrentPageID     string `json:"currentPageId"`
	CurrentPageNumber int    `json:"currentPageNumber"`
	LastReadAt        int64  `json:"lastReadAt"` // Unix milliseconds
}

// Bookmarks maps a book id to its single bookmarked page number
type Bookmarks map[string]int

// LibraryBook records that a book was opened at least once.
// Written once and never updated.
type LibraryBook struct {
	BookID      string `json:"bookId"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Cover       string `json:"cover"`
	FirstReadAt int64  `json:"firstReadAt"` // Unix milliseconds
}
