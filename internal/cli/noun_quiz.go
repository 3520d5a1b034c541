package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/at-ishikawa/nounquiz/internal/sentence"
)

// NounQuizCLI asks for the nouns of one sentence per session.
type NounQuizCLI struct {
	*InteractiveQuizCLI
	cards   []sentence.Record
	asked   int
	correct int
}

// NewNounQuizCLI creates a quiz over the store records. A positive count
// limits the number of questions.
func NewNounQuizCLI(store *sentence.Store, count int, stdin io.Reader, stdout io.Writer) *NounQuizCLI {
	cards := store.Records()
	if count > 0 && count < len(cards) {
		cards = cards[:count]
	}
	return &NounQuizCLI{
		InteractiveQuizCLI: newInteractiveQuizCLI(stdin, stdout),
		cards:              cards,
	}
}

// ShuffleCards shuffles the remaining sentences
func (r *NounQuizCLI) ShuffleCards() {
	rand.Shuffle(len(r.cards), func(i, j int) {
		r.cards[i], r.cards[j] = r.cards[j], r.cards[i]
	})
}

// Limit keeps the first count sentences. A non-positive count keeps all.
func (r *NounQuizCLI) Limit(count int) {
	if count > 0 && count < len(r.cards) {
		r.cards = r.cards[:count]
	}
}

// GetCardCount returns the number of remaining sentences
func (r *NounQuizCLI) GetCardCount() int {
	return len(r.cards)
}

// Score returns the correct and asked counts.
func (r *NounQuizCLI) Score() (int, int) {
	return r.correct, r.asked
}

func (r *NounQuizCLI) Session(ctx context.Context) error {
	if len(r.cards) == 0 {
		_, _ = fmt.Fprintf(r.stdoutWriter, "No more sentences. Score: %d/%d\n", r.correct, r.asked)
		return errEnd
	}
	card := r.cards[0]

	if card.Title != "" {
		_, _ = r.italic.Fprintf(r.stdoutWriter, "[%s] ", card.Title)
	}
	_, _ = fmt.Fprintln(r.stdoutWriter, card.Sentence)
	_, _ = r.bold.Fprintf(r.stdoutWriter, "Nouns (%d, comma separated): ", len(card.Nouns))

	line, err := r.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintf(r.stdoutWriter, "\nScore: %d/%d\n", r.correct, r.asked)
		return errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading input: %w", err)
	}

	// Grade the card itself; sentences are not unique across titles.
	result := sentence.CheckAnswer(card, parseAnswers(line))
	r.asked++
	if result.IsCorrect {
		r.correct++
		_, _ = r.green.Fprintln(r.stdoutWriter, "\u2705 It's correct.")
	} else {
		_, _ = r.red.Fprintf(r.stdoutWriter, "\u274C It's wrong. The nouns are %s\n",
			strings.Join(result.CorrectNouns, ", "),
		)
	}
	_, _ = fmt.Fprintln(r.stdoutWriter)

	r.cards = r.cards[1:]
	return nil
}

// parseAnswers keeps repeated answers so the size rule sees what was typed.
func parseAnswers(line string) []string {
	answers := make([]string, 0)
	for _, piece := range strings.Split(line, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			answers = append(answers, piece)
		}
	}
	return answers
}
