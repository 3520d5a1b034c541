package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExtractCommand(sources *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <sentence>...",
		Short: "Print the nouns the configured tagger finds in each sentence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			for _, text := range args {
				nouns, err := quiz.Extractor.Extract(cmd.Context(), text)
				if err != nil {
					return fmt.Errorf("extractor.Extract() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n  nouns (%d): %s\n", text, len(nouns), strings.Join(nouns, ", "))
			}
			return nil
		},
	}
}
