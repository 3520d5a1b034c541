package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/nounquiz/internal/cli"
)

func newQuizCommand(sources *sourceFlags) *cobra.Command {
	var (
		count   int
		shuffle bool
	)

	command := &cobra.Command{
		Use:   "quiz",
		Short: "Answer the nouns of each sentence in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			store := quiz.LoadStore(cmd.Context())
			quizCLI := cli.NewNounQuizCLI(store, 0, cmd.InOrStdin(), cmd.OutOrStdout())
			if shuffle {
				quizCLI.ShuffleCards()
			}
			quizCLI.Limit(count)
			return quizCLI.Run(cmd.Context(), quizCLI)
		},
	}
	command.Flags().IntVar(&count, "count", 0, "Number of sentences to ask. All sentences by default")
	command.Flags().BoolVar(&shuffle, "shuffle", true, "Ask the sentences in random order")

	return command
}
