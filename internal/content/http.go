package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kahaaniverse/kahaani/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout  = 30 * time.Second
	userAgent       = "Kahaani/1.0"
	maxDocumentSize = 16 << 20
)

// CatalogPath and BookPath describe the static document layout shared by
// the HTTP provider and the content server.
const (
	CatalogPath = "/books/index.json"
	bookPathFmt = "/books/book-%s.json"
)

// BookPath returns the document path for a book id
func BookPath(id string) string {
	return fmt.Sprintf(bookPathFmt, url.PathEscape(id))
}

// HTTPProvider implements domain.ContentProvider over static JSON documents.
// The catalog is fetched once per process; books are cached after a
// successful, validated fetch.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	catalog []domain.BookMetadata
	loaded  bool
	books   map[string]*domain.Book
}

// NewHTTPProvider creates a provider rooted at baseURL
func NewHTTPProvider(baseURL string, logger *slog.Logger) *HTTPProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		books:  make(map[string]*domain.Book),
	}
}

// GetCatalog returns the catalog, fetching it on first use.
// Concurrent first calls share one request. Failures are not cached.
func (p *HTTPProvider) GetCatalog(ctx context.Context) []domain.BookMetadata {
	p.mu.RLock()
	if p.loaded {
		catalog := p.catalog
		p.mu.RUnlock()
		return catalog
	}
	p.mu.RUnlock()

	v, err := p.shared(ctx, "catalog", func(ctx context.Context) (interface{}, error) {
		var catalog []domain.BookMetadata
		if err := p.fetchJSON(ctx, CatalogPath, &catalog); err != nil {
			return nil, err
		}
		if catalog == nil {
			catalog = []domain.BookMetadata{}
		}
		p.mu.Lock()
		p.catalog = catalog
		p.loaded = true
		p.mu.Unlock()
		return catalog, nil
	})
	if err != nil {
		p.logger.Error("failed to load catalog", "error", err)
		return []domain.BookMetadata{}
	}
	return v.([]domain.BookMetadata)
}

// GetBookByID returns a validated book or false on any failure
func (p *HTTPProvider) GetBookByID(ctx context.Context, id string) (*domain.Book, bool) {
	p.mu.RLock()
	if book, ok := p.books[id]; ok {
		p.mu.RUnlock()
		return book, true
	}
	p.mu.RUnlock()

	v, err := p.shared(ctx, "book:"+id, func(ctx context.Context) (interface{}, error) {
		var book domain.Book
		if err := p.fetchJSON(ctx, BookPath(id), &book); err != nil {
			return nil, err
		}
		if err := book.Validate(); err != nil {
			return nil, err
		}
		if book.ID != id {
			return nil, fmt.Errorf("%w: document for %s has id %s", domain.ErrInvalidBook, id, book.ID)
		}
		p.mu.Lock()
		p.books[id] = &book
		p.mu.Unlock()
		return &book, nil
	})
	if err != nil {
		p.logger.Error("failed to load book", "bookID", id, "error", err)
		return nil, false
	}
	return v.(*domain.Book), true
}

// shared runs fetch once for all concurrent callers of key. The fetch is
// detached from the first caller's cancellation; each caller stops
// waiting when its own ctx ends.
func (p *HTTPProvider) shared(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := p.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ClearCache drops cached books. The catalog is kept.
func (p *HTTPProvider) ClearCache() {
	p.mu.Lock()
	p.books = make(map[string]*domain.Book)
	p.mu.Unlock()
}

// CacheSize returns the number of cached books
func (p *HTTPProvider) CacheSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.books)
}

// fetchJSON performs a GET and decodes the body into dest
func (p *HTTPProvider) fetchJSON(ctx context.Context, path string, dest interface{}) error {
	reqURL := p.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	p.logger.Debug("content request", "url", reqURL)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrContentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrBookNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", domain.ErrContentUnavailable, path, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
