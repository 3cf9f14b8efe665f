package service

import (
	"strings"

	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/sahilm/fuzzy"
)

// FilterResult is a filtered book with match metadata for highlighting
type FilterResult struct {
	Book           domain.BookMetadata
	MatchedIndexes []int // matched positions in the title
	Score          int
}

// FilterIndex implements sahilm/fuzzy.Source over book titles
type FilterIndex struct {
	books       []domain.BookMetadata
	lowerTitles []string
}

// NewFilterIndex indexes books, pre-computing lowercase titles
func NewFilterIndex(books []domain.BookMetadata) *FilterIndex {
	idx := &FilterIndex{
		books:       books,
		lowerTitles: make([]string, len(books)),
	}
	for i, b := range books {
		idx.lowerTitles[i] = strings.ToLower(b.Title)
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *FilterIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of books (implements fuzzy.Source)
func (idx *FilterIndex) Len() int { return len(idx.books) }

// Filter returns the books whose titles fuzzy-match query, best match first.
// An empty query returns every book unscored.
func (idx *FilterIndex) Filter(query string) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]FilterResult, len(idx.books))
		for i, b := range idx.books {
			results[i] = FilterResult{Book: b}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]FilterResult, len(matches))
	for i, m := range matches {
		results[i] = FilterResult{
			Book:           idx.books[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
