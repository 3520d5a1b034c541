// Package nouns extracts the noun answer key of a quiz sentence.
package nouns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/nounquiz/internal/pos"
)

// ErrTagger wraps any failure of the tagging capability.
var ErrTagger = errors.New("part-of-speech tagger failed")

// Extractor keeps noun tokens in first-occurrence order without duplicates.
type Extractor struct {
	tagger pos.Tagger
}

// NewExtractor creates a new Extractor.
func NewExtractor(tagger pos.Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Extract returns the nouns of sentence. Duplicates are detected on the
// trimmed surface form while the surface form is returned as tagged.
func (e *Extractor) Extract(ctx context.Context, sentence string) ([]string, error) {
	if strings.TrimSpace(sentence) == "" {
		return []string{}, nil
	}

	tokens, err := e.tagger.Tag(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTagger, err)
	}

	result := make([]string, 0)
	seen := make(map[string]bool)
	for _, token := range tokens {
		if !token.Category.IsNoun() {
			continue
		}
		key := strings.TrimSpace(token.Surface)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, token.Surface)
	}

	slog.Default().Debug("extracted nouns",
		"sentence", sentence,
		"nouns", result,
	)
	return result, nil
}

// SplitManual parses a comma separated override. Pieces are trimmed, empty
// pieces dropped and repeated pieces kept only once.
func SplitManual(value string) []string {
	result := make([]string, 0)
	seen := make(map[string]bool)
	for _, piece := range strings.Split(value, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" || seen[piece] {
			continue
		}
		seen[piece] = true
		result = append(result, piece)
	}
	return result
}
