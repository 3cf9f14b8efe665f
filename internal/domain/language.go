package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language is a supported content language code
type Language string

const (
	LanguageEnglish  Language = "english"
	LanguageHindi    Language = "hindi"
	LanguageHinglish Language = "hinglish"
)

// DefaultLanguage is used when no valid preference is stored
const DefaultLanguage = LanguageEnglish

var supportedLanguages = []Language{LanguageEnglish, LanguageHindi, LanguageHinglish}

var titleCaser = cases.Title(language.English)

// Languages returns the supported languages in display order
func Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage resolves a language code, ignoring case and surrounding space
func ParseLanguage(s string) (Language, bool) {
	candidate := Language(strings.ToLower(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, true
	}
	return "", false
}

// Valid reports whether l is one of the supported codes
func (l Language) Valid() bool {
	for _, s := range supportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// OrDefault returns l if valid, otherwise DefaultLanguage
func (l Language) OrDefault() Language {
	if l.Valid() {
		return l
	}
	return DefaultLanguage
}

// DisplayName returns the label shown in the language selector
func (l Language) DisplayName() string {
	return titleCaser.String(string(l))
}
