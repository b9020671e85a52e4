package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a UI and data language supported by the weather source. The
// underlying string is the wire value sent with every fetch.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	German  Language = "de"
	Spanish Language = "es"
	Swahili Language = "sw"
	Arabic  Language = "ar"
	Hindi   Language = "hi"
)

// DefaultLanguage is used when no preference has been stored.
const DefaultLanguage = English

var (
	supportedLanguages = []Language{English, French, German, Spanish, Swahili, Arabic, Hindi}
	languageMatcher    = language.NewMatcher(supportedTags())
)

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(supportedLanguages))
	for i, l := range supportedLanguages {
		tags[i] = language.MustParse(string(l))
	}
	return tags
}

// AllLanguages lists every supported language, default first.
func AllLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// Value returns the wire-format string for l.
func (l Language) Value() string {
	return string(l)
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	tag, err := language.Parse(string(l))
	if err != nil {
		return language.Und
	}
	return tag
}

// ParseLanguage resolves any BCP 47 tag ("fr-CA", "de", "en-GB") to the
// closest supported language. Tags with no reasonable match are rejected.
func ParseLanguage(value string) (Language, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty tag", ErrUnsupportedLanguage)
	}

	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLanguage, value, err)
	}

	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, value)
	}
	return supportedLanguages[index], nil
}
