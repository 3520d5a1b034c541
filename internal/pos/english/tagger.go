// Package english tags English text with the averaged perceptron model shipped by prose.
package english

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/at-ishikawa/nounquiz/internal/pos"
)

// Tagger produces Penn Treebank tags, so categories pass through unchanged.
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag implements pos.Tagger.
func (t *Tagger) Tag(ctx context.Context, text string) ([]pos.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []pos.Token{}, nil
	}

	doc, err := prose.NewDocument(
		text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose.NewDocument() > %w", err)
	}

	tokens := doc.Tokens()
	result := make([]pos.Token, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, pos.Token{
			Surface:  token.Text,
			Category: pos.Category(token.Tag),
		})
	}
	return result, nil
}
