package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/nounquiz/internal/sentence"
	"github.com/at-ishikawa/nounquiz/internal/source"
)

func newValidateCommand(sources *sourceFlags) *cobra.Command {
	var list bool

	command := &cobra.Command{
		Use:   "validate",
		Short: "Load the sentence source without the fallback and report the first failing row",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			loader, err := quiz.Loader()
			if err != nil {
				return err
			}
			records, err := loader.Load(cmd.Context())
			if err != nil {
				displayLoadError(cmd.OutOrStdout(), err)
				return fmt.Errorf("validation failed: %w", err)
			}

			displayRecords(cmd.OutOrStdout(), records, list)
			if len(records) == 0 {
				return errors.New("validation failed: the source has no sentences")
			}
			return nil
		},
	}
	command.Flags().BoolVar(&list, "list", false, "List every sentence with its nouns")

	return command
}

func displayLoadError(w io.Writer, err error) {
	var loadErr *source.LoadError
	if !errors.As(err, &loadErr) {
		fmt.Fprintf(w, "✗ %v\n", err)
		return
	}
	switch loadErr.Stage {
	case source.StageRow:
		fmt.Fprintf(w, "✗ %s: row %d: %v\n", loadErr.Location, loadErr.Row, loadErr.Err)
	case source.StageColumns:
		fmt.Fprintf(w, "✗ %s: %v\n", loadErr.Location, loadErr.Err)
		fmt.Fprintf(w, "  Required columns: %s, %s\n", source.ColumnSentence, source.ColumnTitle)
	default:
		fmt.Fprintf(w, "✗ %s cannot be opened: %v\n", loadErr.Location, loadErr.Err)
	}
}

func displayRecords(w io.Writer, records []sentence.Record, list bool) {
	if list {
		for i, record := range records {
			fmt.Fprintf(w, "%d. %s\n   nouns (%d): %s\n", i+1, record.Sentence, len(record.Nouns), strings.Join(record.Nouns, ", "))
		}
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "✗ No sentences found")
		return
	}
	fmt.Fprintf(w, "✓ %d sentence(s) loaded\n", len(records))
}
