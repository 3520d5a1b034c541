// Package pos defines the part-of-speech tagging capability used by the noun extractor.
package pos

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=interface.go -destination=../mocks/pos/mock_tagger.go -package=mock_pos

// Tagger splits text into tokens annotated with a grammatical category.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}

// Category is a Penn Treebank style tag. Taggers for other languages map
// their native labels onto this set where an equivalent exists.
type Category string

const (
	CategoryNoun             Category = "NN"
	CategoryNounPlural       Category = "NNS"
	CategoryProperNoun       Category = "NNP"
	CategoryProperNounPlural Category = "NNPS"
	CategoryPersonalPronoun  Category = "PRP"
	CategoryCardinalNumber   Category = "CD"
	CategoryUnknown          Category = "X"
)

// nounCategories lists every noun subtype: common and proper, singular and plural.
var nounCategories = map[Category]bool{
	CategoryNoun:             true,
	CategoryNounPlural:       true,
	CategoryProperNoun:       true,
	CategoryProperNounPlural: true,
}

// IsNoun reports whether c is one of the noun categories.
func (c Category) IsNoun() bool {
	return nounCategories[c]
}

// NounCategories returns the noun tag set in a stable order.
func NounCategories() []Category {
	return []Category{CategoryNoun, CategoryNounPlural, CategoryProperNoun, CategoryProperNounPlural}
}

// Token is a single tagged unit of text.
type Token struct {
	Surface  string   `json:"surface"`
	Category Category `json:"tag"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s/%s", t.Surface, t.Category)
}

// Language selects a tagger implementation.
type Language string

const (
	LanguageEnglish  Language = "english"
	LanguageJapanese Language = "japanese"
	LanguageRemote   Language = "remote"
)

// ParseLanguage normalizes a configured language name.
func ParseLanguage(value string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(value))) {
	case LanguageEnglish, "":
		return LanguageEnglish, nil
	case LanguageJapanese:
		return LanguageJapanese, nil
	case LanguageRemote:
		return LanguageRemote, nil
	}
	return "", fmt.Errorf("unsupported tagger language %q", value)
}
