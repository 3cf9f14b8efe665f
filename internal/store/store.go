package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kahaaniverse/kahaani/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names. Each collection lives in its own bucket so a corrupt
// value in one never affects the others.
var (
	bucketBookmarks   = []byte("bookmarks")
	bucketProgress    = []byte("reading_progress")
	bucketLibrary     = []byte("library")
	bucketPreferences = []byte("preferences")
)

// Record keys
const (
	keyBookmarks = "kv.bookmarks"
	keyProgress  = "kv.reading_progress"
	keyLibrary   = "kv.library"
	keyLanguage  = "kv.lang"
)

const dbFileName = "kahaani.db"

// ErrStoreClosed is returned by setters after Close
var ErrStoreClosed = errors.New("store is closed")

func allBuckets() [][]byte {
	return [][]byte{bucketBookmarks, bucketProgress, bucketLibrary, bucketPreferences}
}

// ReadingStore implements domain.Store using BoltDB.
type ReadingStore struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex // Protects memory cache
	closed bool

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the store under dataDir.
// An empty dataDir gives a memory-only store.
func Open(dataDir string, logger *slog.Logger) (*ReadingStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &ReadingStore{cache: make(map[string][]byte), logger: logger}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets() {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("opened reading store", "path", dbPath)
	return &ReadingStore{db: db, cache: make(map[string][]byte), logger: logger}, nil
}

// NewMemoryStore returns a store that keeps everything in memory
func NewMemoryStore() *ReadingStore {
	s, _ := Open("", nil)
	return s
}

func (s *ReadingStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

// get decodes the value at bucket/key into dest. It returns false when the
// value is missing or fails to decode; dest is then left untouched.
func (s *ReadingStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return s.decode(cacheKey, data, dest)
	}
	closed := s.closed
	s.mu.RUnlock()

	if s.db == nil || closed {
		return false
	}

	// Read from BoltDB
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("store read failed", "key", cacheKey, "error", err)
		return false
	}

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return s.decode(cacheKey, data, dest)
}

func (s *ReadingStore) decode(cacheKey string, data []byte, dest interface{}) bool {
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("discarding corrupt store value", "key", cacheKey, "error", err)
		return false
	}
	return true
}

func (s *ReadingStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.mu.Unlock()

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			b, err := tx.CreateBucketIfNotExists(bucket)
			if err != nil {
				return err
			}
			return b.Put([]byte(key), data)
		})
		if err != nil {
			// Drop the cached copy so the next read reflects what is on disk
			s.mu.Lock()
			delete(s.cache, cacheKey)
			s.mu.Unlock()
			return fmt.Errorf("failed to write %s: %w", cacheKey, err)
		}
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()
	return nil
}

// === Bookmarks ===

func (s *ReadingStore) GetBookmarks() domain.Bookmarks {
	var bookmarks domain.Bookmarks
	if !s.get(bucketBookmarks, keyBookmarks, &bookmarks) || bookmarks == nil {
		return domain.Bookmarks{}
	}
	return bookmarks
}

func (s *ReadingStore) SetBookmarks(bookmarks domain.Bookmarks) error {
	if bookmarks == nil {
		bookmarks = domain.Bookmarks{}
	}
	return s.set(bucketBookmarks, keyBookmarks, bookmarks)
}

// === Reading progress ===

func (s *ReadingStore) GetReadingProgress() []domain.ReadingProgress {
	var progress []domain.ReadingProgress
	if !s.get(bucketProgress, keyProgress, &progress) || progress == nil {
		return []domain.ReadingProgress{}
	}
	return progress
}

func (s *ReadingStore) SetReadingProgress(progress []domain.ReadingProgress) error {
	if progress == nil {
		progress = []domain.ReadingProgress{}
	}
	return s.set(bucketProgress, keyProgress, progress)
}

// === Library ===

func (s *ReadingStore) GetLibrary() []domain.LibraryBook {
	var library []domain.LibraryBook
	if !s.get(bucketLibrary, keyLibrary, &library) || library == nil {
		return []domain.LibraryBook{}
	}
	return library
}

func (s *ReadingStore) SetLibrary(library []domain.LibraryBook) error {
	if library == nil {
		library = []domain.LibraryBook{}
	}
	return s.set(bucketLibrary, keyLibrary, library)
}

// === Language preference ===

func (s *ReadingStore) GetLanguagePreference() domain.Language {
	var raw string
	if !s.get(bucketPreferences, keyLanguage, &raw) {
		return domain.DefaultLanguage
	}
	lang, ok := domain.ParseLanguage(raw)
	if !ok {
		s.logger.Debug("ignoring unsupported language preference", "value", raw)
		return domain.DefaultLanguage
	}
	return lang
}

func (s *ReadingStore) SetLanguagePreference(lang domain.Language) error {
	return s.set(bucketPreferences, keyLanguage, string(lang))
}

// Reset deletes all data from all buckets
func (s *ReadingStore) Reset() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return ErrStoreClosed
	}
	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets() {
			if tx.Bucket(bucket) != nil {
				if err := tx.DeleteBucket(bucket); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
