package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onePage(id string) []BookPage {
	return []BookPage{{ID: id, Content: id, PageNumber: 1}}
}

func TestBook_Bundle(t *testing.T) {
	full := &Book{
		ID:    "1",
		Title: "Default",
		Pages: onePage("default"),
		Languages: map[Language]LanguageBundle{
			LanguageEnglish: {Title: "English", Pages: onePage("en")},
			LanguageHindi:   {Title: "Hindi", Pages: onePage("hi")},
		},
	}
	hindiOnly := &Book{
		ID:    "2",
		Title: "Hindi only",
		Languages: map[Language]LanguageBundle{
			LanguageHinglish: {Title: "Hinglish", Pages: onePage("hng")},
			LanguageHindi:    {Title: "Hindi", Pages: onePage("hi")},
		},
	}
	plain := &Book{ID: "3", Title: "Plain", Pages: onePage("plain")}

	tests := []struct {
		name  string
		book  *Book
		lang  Language
		title string
	}{
		{"requested language", full, LanguageHindi, "Hindi"},
		{"falls back to english", full, LanguageHinglish, "English"},
		{"falls back to default pages", plain, LanguageHindi, "Plain"},
		{"requested language without english", hindiOnly, LanguageHinglish, "Hinglish"},
		{"first supported language with pages", hindiOnly, LanguageEnglish, "Hindi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.book.Bundle(tt.lang)
			assert.Equal(t, tt.title, b.Title)
			assert.Equal(t, 1, b.PageCount())
		})
	}
}

func TestBook_ValidateWithoutEnglish(t *testing.T) {
	book := &Book{
		ID: "2",
		Languages: map[Language]LanguageBundle{
			LanguageHindi: {Pages: onePage("hi")},
		},
	}
	require.NoError(t, book.Validate())
	assert.Equal(t, 1, book.Bundle(DefaultLanguage).PageCount())
}
