// Package japanese tags Japanese text with kagome and the IPA dictionary.
package japanese

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/at-ishikawa/nounquiz/internal/pos"
)

// IPA feature labels.
const (
	labelNoun        = "名詞"
	labelProperNoun  = "固有名詞"
	labelPronoun     = "代名詞"
	labelNumber      = "数"
	labelPlaceholder = "*"
)

// Tagger maps the IPA part-of-speech features onto pos categories.
//
// Kagome IPA features:
// 0: Part of speech
// 1-3: Sub-POS
// 4-5: Conjugation type and form
// 6: Base form
// 7-8: Reading and pronunciation
type Tagger struct {
	t *tokenizer.Tokenizer
}

// NewTagger creates a new Tagger backed by the IPA dictionary.
func NewTagger() (*Tagger, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("tokenizer.New() > %w", err)
	}
	return &Tagger{t: t}, nil
}

// Tag implements pos.Tagger.
func (tagger *Tagger) Tag(ctx context.Context, text string) ([]pos.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := tagger.t.Tokenize(text)
	result := make([]pos.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		result = append(result, pos.Token{
			Surface:  token.Surface,
			Category: categoryOf(token.Features()),
		})
	}
	return result, nil
}

func categoryOf(features []string) pos.Category {
	if len(features) == 0 || features[0] == "" || features[0] == labelPlaceholder {
		return pos.CategoryUnknown
	}
	if features[0] != labelNoun {
		return pos.Category(features[0])
	}

	sub := ""
	if len(features) > 1 {
		sub = features[1]
	}
	switch sub {
	case labelProperNoun:
		return pos.CategoryProperNoun
	case labelPronoun:
		return pos.CategoryPersonalPronoun
	case labelNumber:
		return pos.CategoryCardinalNumber
	}
	return pos.CategoryNoun
}
