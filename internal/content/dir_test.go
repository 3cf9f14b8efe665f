package content

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlBook = `
id: "7"
title: Monsoon Letters
author: Ira Sen
genre: Romance
pages:
  - id: p1
    pageNumber: 1
    content: Rain on the tin roof.
languages:
  english:
    title: Monsoon Letters
    pages:
      - id: p1
        pageNumber: 1
        content: Rain on the tin roof.
      - id: p2
        pageNumber: 2
        content: A letter arrives.
  hindi:
    title: मानसून के ख़त
    pages:
      - id: p1-hi
        pageNumber: 1
        content: टीन की छत पर बारिश।
`

func mustJSON(t *testing.T, v interface{}) *fstest.MapFile {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return &fstest.MapFile{Data: data}
}

func TestDirProvider_JSONWithIndex(t *testing.T) {
	books := SampleBooks()
	fsys := fstest.MapFS{
		"index.json":  mustJSON(t, []domain.BookMetadata{books[0].Metadata()}),
		"book-1.json": mustJSON(t, books[0]),
	}
	p := NewFSProvider(fsys, nil)
	ctx := context.Background()

	catalog := p.GetCatalog(ctx)
	require.Len(t, catalog, 1)
	assert.Equal(t, "1", catalog[0].ID)

	book, ok := p.GetBookByID(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, books[0].Title, book.Title)
	assert.Equal(t, 1, p.CacheSize())

	_, ok = p.GetBookByID(ctx, "2")
	assert.False(t, ok)
}

func TestDirProvider_YAMLWithoutIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"book-7.yaml": &fstest.MapFile{Data: []byte(yamlBook)},
		"book-1.json": mustJSON(t, SampleBooks()[0]),
		"notes.txt":   &fstest.MapFile{Data: []byte("ignored")},
	}
	p := NewFSProvider(fsys, nil)
	ctx := context.Background()

	catalog := p.GetCatalog(ctx)
	require.Len(t, catalog, 2)
	assert.Equal(t, "1", catalog[0].ID)
	assert.Equal(t, "7", catalog[1].ID)
	assert.Equal(t, "Monsoon Letters", catalog[1].Title)

	book, ok := p.GetBookByID(ctx, "7")
	require.True(t, ok)
	assert.Len(t, book.Bundle(domain.LanguageEnglish).Pages, 2)
	assert.Equal(t, "मानसून के ख़त", book.Bundle(domain.LanguageHindi).Title)
	// Hinglish falls back to English
	assert.Len(t, book.Bundle(domain.LanguageHinglish).Pages, 2)
}

func TestDirProvider_RejectsBadDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"book-bad.json":   &fstest.MapFile{Data: []byte("{")},
		"book-empty.json": &fstest.MapFile{Data: []byte(`{"id":"empty","pages":[]}`)},
		"book-other.json": &fstest.MapFile{Data: []byte(`{"id":"x","pages":[{"id":"a","pageNumber":1}]}`)},
	}
	p := NewFSProvider(fsys, nil)
	ctx := context.Background()

	for _, id := range []string{"bad", "empty", "other", "../etc/passwd", "missing"} {
		_, ok := p.GetBookByID(ctx, id)
		assert.False(t, ok, id)
	}
	assert.Empty(t, p.GetCatalog(ctx))
}

func TestDirProvider_ReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	data, err := json.Marshal(SampleBooks()[1])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book-2.json"), data, 0644))

	p := NewDirProvider(dir, nil)
	book, ok := p.GetBookByID(context.Background(), "2")
	require.True(t, ok)
	assert.Equal(t, "Digital Dreams", book.Title)
}

func TestDirProvider_CanceledContext(t *testing.T) {
	p := NewFSProvider(fstest.MapFS{"book-1.json": mustJSON(t, SampleBooks()[0])}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := p.GetBookByID(ctx, "1")
	assert.False(t, ok)
}
