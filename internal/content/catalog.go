package content

import (
	"sort"
	"strings"

	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Catalog is a read-only listing with the browse queries the host needs
type Catalog []domain.BookMetadata

// Find returns the entry with the given id
func (c Catalog) Find(id string) (domain.BookMetadata, bool) {
	for _, b := range c {
		if b.ID == id {
			return b, true
		}
	}
	return domain.BookMetadata{}, false
}

// ByGenre returns the books of one genre in catalog order
func (c Catalog) ByGenre(genre string) Catalog {
	var out Catalog
	for _, b := range c {
		if b.Genre == genre {
			out = append(out, b)
		}
	}
	return out
}

// Genres returns the distinct genres, sorted
func (c Catalog) Genres() []string {
	set := make(map[string]struct{})
	for _, b := range c {
		if b.Genre != "" {
			set[b.Genre] = struct{}{}
		}
	}
	genres := make([]string, 0, len(set))
	for g := range set {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// Latest orders by numeric id, newest first. Non-numeric ids sort last.
func (c Catalog) Latest() Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NumericID() > out[j].NumericID()
	})
	return out
}

// Search matches query against title, author, genre and description,
// case-insensitively, in catalog order. When nothing contains the query,
// titles are ranked by fuzzy distance instead so typos still find a book.
func (c Catalog) Search(query string) Catalog {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	lower := strings.ToLower(query)
	var out Catalog
	for _, b := range c {
		if containsFold(b.Title, lower) ||
			containsFold(b.Author, lower) ||
			containsFold(b.Genre, lower) ||
			containsFold(b.Description, lower) {
			out = append(out, b)
		}
	}
	if len(out) > 0 {
		return out
	}
	return c.fuzzyTitles(query)
}

func (c Catalog) fuzzyTitles(query string) Catalog {
	titles := make([]string, len(c))
	for i, b := range c {
		titles[i] = b.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	sort.Sort(ranks)

	out := make(Catalog, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, c[r.OriginalIndex])
	}
	return out
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
