package store

import (
	"path/filepath"
	"testing"

	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) (*ReadingStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestReadingStore_EmptyDefaults(t *testing.T) {
	s, _ := openTestStore(t)

	assert.Empty(t, s.GetBookmarks())
	assert.NotNil(t, s.GetBookmarks())
	assert.Empty(t, s.GetReadingProgress())
	assert.Empty(t, s.GetLibrary())
	assert.Equal(t, domain.DefaultLanguage, s.GetLanguagePreference())
}

func TestReadingStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetBookmarks(domain.Bookmarks{"1": 3}))
	require.NoError(t, s.SetReadingProgress([]domain.ReadingProgress{
		{BookID: "1", CurrentPageID: "page-1-3", CurrentPageNumber: 3, LastReadAt: 42},
	}))
	require.NoError(t, s.SetLibrary([]domain.LibraryBook{{BookID: "1", Title: "T", FirstReadAt: 7}}))
	require.NoError(t, s.SetLanguagePreference(domain.LanguageHindi))
	require.NoError(t, s.Close())

	reopened, err := Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, domain.Bookmarks{"1": 3}, reopened.GetBookmarks())
	assert.Equal(t, []domain.ReadingProgress{
		{BookID: "1", CurrentPageID: "page-1-3", CurrentPageNumber: 3, LastReadAt: 42},
	}, reopened.GetReadingProgress())
	assert.Equal(t, "T", reopened.GetLibrary()[0].Title)
	assert.Equal(t, domain.LanguageHindi, reopened.GetLanguagePreference())
}

// writeRaw puts bytes directly into bbolt, bypassing JSON encoding
func writeRaw(t *testing.T, dir string, bucket []byte, key string, value []byte) {
	t.Helper()
	db, err := bolt.Open(filepath.Join(dir, dbFileName), 0600, nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	}))
}

func TestReadingStore_CorruptValueFallsBackWithoutAffectingOthers(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetLibrary([]domain.LibraryBook{{BookID: "2"}}))
	require.NoError(t, s.Close())

	writeRaw(t, dir, bucketBookmarks, keyBookmarks, []byte("{not json"))
	writeRaw(t, dir, bucketPreferences, keyLanguage, []byte(`"klingon"`))

	s, err = Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, domain.Bookmarks{}, s.GetBookmarks())
	assert.Equal(t, domain.DefaultLanguage, s.GetLanguagePreference())
	require.Len(t, s.GetLibrary(), 1)
	assert.Equal(t, "2", s.GetLibrary()[0].BookID)

	// A later write replaces the corrupt value
	require.NoError(t, s.SetBookmarks(domain.Bookmarks{"2": 1}))
	assert.Equal(t, domain.Bookmarks{"2": 1}, s.GetBookmarks())
}

func TestReadingStore_SetAfterCloseReportsError(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.SetBookmarks(domain.Bookmarks{"1": 1})
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.Equal(t, domain.Bookmarks{}, s.GetBookmarks())
}

func TestReadingStore_Reset(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.SetBookmarks(domain.Bookmarks{"1": 2}))
	require.NoError(t, s.SetLanguagePreference(domain.LanguageHinglish))

	require.NoError(t, s.Reset())

	assert.Empty(t, s.GetBookmarks())
	assert.Equal(t, domain.DefaultLanguage, s.GetLanguagePreference())

	// Buckets still usable after reset
	require.NoError(t, s.SetBookmarks(domain.Bookmarks{"3": 1}))
	assert.Equal(t, domain.Bookmarks{"3": 1}, s.GetBookmarks())
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetLanguagePreference(domain.LanguageHindi))
	assert.Equal(t, domain.LanguageHindi, s.GetLanguagePreference())
	require.NoError(t, s.Reset())
	assert.Equal(t, domain.DefaultLanguage, s.GetLanguagePreference())
}

func TestUpsertProgress_ReplacesByBookID(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, UpsertProgress(s, domain.ReadingProgress{BookID: "1", CurrentPageNumber: 1}))
	require.NoError(t, UpsertProgress(s, domain.ReadingProgress{BookID: "2", CurrentPageNumber: 1}))
	require.NoError(t, UpsertProgress(s, domain.ReadingProgress{BookID: "1", CurrentPageNumber: 3}))

	all := s.GetReadingProgress()
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].BookID)
	assert.Equal(t, 3, all[0].CurrentPageNumber)

	p, ok := FindProgress(s, "2")
	require.True(t, ok)
	assert.Equal(t, 1, p.CurrentPageNumber)

	_, ok = FindProgress(s, "9")
	assert.False(t, ok)
}

func TestBookmarkHelpers(t *testing.T) {
	s := NewMemoryStore()

	_, ok := GetBookmark(s, "1")
	assert.False(t, ok)

	require.NoError(t, SetBookmark(s, "1", 2))
	require.NoError(t, SetBookmark(s, "1", 5))
	page, ok := GetBookmark(s, "1")
	require.True(t, ok)
	assert.Equal(t, 5, page)
	assert.Len(t, s.GetBookmarks(), 1)

	require.NoError(t, ClearBookmark(s, "1"))
	_, ok = GetBookmark(s, "1")
	assert.False(t, ok)
	assert.NoError(t, ClearBookmark(s, "1"))
}

func TestAddToLibrary_InsertsOnce(t *testing.T) {
	s := NewMemoryStore()

	added, err := AddToLibrary(s, domain.LibraryBook{BookID: "1", Title: "First", FirstReadAt: 1})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = AddToLibrary(s, domain.LibraryBook{BookID: "1", Title: "Renamed", FirstReadAt: 2})
	require.NoError(t, err)
	assert.False(t, added)

	lib := s.GetLibrary()
	require.Len(t, lib, 1)
	assert.Equal(t, "First", lib[0].Title)
	assert.Equal(t, int64(1), lib[0].FirstReadAt)
}
