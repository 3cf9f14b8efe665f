package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kahaaniverse/kahaani/internal/domain"
	"gopkg.in/yaml.v3"
)

// DirProvider implements domain.ContentProvider over a directory holding
// index.{json,yaml} and book-{id}.{json,yaml} documents.
type DirProvider struct {
	fsys   fs.FS
	logger *slog.Logger

	mu      sync.RWMutex
	catalog []domain.BookMetadata
	loaded  bool
	books   map[string]*domain.Book
}

// NewDirProvider creates a provider reading from dir
func NewDirProvider(dir string, logger *slog.Logger) *DirProvider {
	return NewFSProvider(os.DirFS(dir), logger)
}

// NewFSProvider creates a provider reading from any fs.FS
func NewFSProvider(fsys fs.FS, logger *slog.Logger) *DirProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirProvider{
		fsys:   fsys,
		logger: logger,
		books:  make(map[string]*domain.Book),
	}
}

// GetCatalog reads the index document. Without one, the catalog is built
// from the book documents themselves, sorted by id.
func (p *DirProvider) GetCatalog(ctx context.Context) []domain.BookMetadata {
	p.mu.RLock()
	if p.loaded {
		catalog := p.catalog
		p.mu.RUnlock()
		return catalog
	}
	p.mu.RUnlock()

	var catalog []domain.BookMetadata
	err := p.readDocument("index", &catalog)
	if errors.Is(err, fs.ErrNotExist) {
		catalog, err = p.scanBooks(ctx)
	}
	if err != nil {
		p.logger.Error("failed to load catalog", "error", err)
		return []domain.BookMetadata{}
	}
	if catalog == nil {
		catalog = []domain.BookMetadata{}
	}

	p.mu.Lock()
	p.catalog = catalog
	p.loaded = true
	p.mu.Unlock()
	return catalog
}

// GetBookByID returns a validated book or false on any failure
func (p *DirProvider) GetBookByID(ctx context.Context, id string) (*domain.Book, bool) {
	p.mu.RLock()
	if book, ok := p.books[id]; ok {
		p.mu.RUnlock()
		return book, true
	}
	p.mu.RUnlock()

	if ctx.Err() != nil {
		return nil, false
	}
	if !fs.ValidPath("book-"+id) || strings.ContainsAny(id, `/\`) {
		p.logger.Warn("rejecting book id", "bookID", id)
		return nil, false
	}

	var book domain.Book
	if err := p.readDocument("book-"+id, &book); err != nil {
		p.logger.Error("failed to load book", "bookID", id, "error", err)
		return nil, false
	}
	if err := book.Validate(); err != nil {
		p.logger.Error("invalid book document", "bookID", id, "error", err)
		return nil, false
	}
	if book.ID != id {
		p.logger.Error("book document id mismatch", "bookID", id, "documentID", book.ID)
		return nil, false
	}

	p.mu.Lock()
	p.books[id] = &book
	p.mu.Unlock()
	return &book, true
}

// ClearCache drops cached books
func (p *DirProvider) ClearCache() {
	p.mu.Lock()
	p.books = make(map[string]*domain.Book)
	p.mu.Unlock()
}

// CacheSize returns the number of cached books
func (p *DirProvider) CacheSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.books)
}

// readDocument decodes name.json, falling back to name.yaml / name.yml
func (p *DirProvider) readDocument(name string, dest interface{}) error {
	if data, err := fs.ReadFile(p.fsys, name+".json"); err == nil {
		if err := json.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("failed to decode %s.json: %w", name, err)
		}
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	for _, ext := range []string{".yaml", ".yml"} {
		data, err := fs.ReadFile(p.fsys, name+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("failed to decode %s%s: %w", name, ext, err)
		}
		return nil
	}
	return fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}

func (p *DirProvider) scanBooks(ctx context.Context) ([]domain.BookMetadata, error) {
	entries, err := fs.ReadDir(p.fsys, ".")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var catalog []domain.BookMetadata
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "book-") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, "book-"), filepath.Ext(name))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if book, ok := p.GetBookByID(ctx, id); ok {
			catalog = append(catalog, book.Metadata())
		}
	}

	sort.SliceStable(catalog, func(i, j int) bool {
		ni, nj := catalog[i].NumericID(), catalog[j].NumericID()
		if ni != nj {
			return ni < nj
		}
		return catalog[i].ID < catalog[j].ID
	})
	return catalog, nil
}
