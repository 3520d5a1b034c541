package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTitlesCommand(sources *sourceFlags) *cobra.Command {
	var test string

	command := &cobra.Command{
		Use:   "titles",
		Short: "List the sentence titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			store := quiz.LoadStore(cmd.Context())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tTEST\tGROUP")
			for _, entry := range store.ListTitles(test) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Title, entry.Test, entry.Group)
			}
			return w.Flush()
		},
	}
	command.Flags().StringVar(&test, "test", "", "Only list the titles of this test")

	return command
}

func newGroupsCommand(sources *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the groups and the tests of each group",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			catalog := quiz.LoadStore(cmd.Context()).Catalog()
			for _, group := range catalog.Groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", group, strings.Join(catalog.TestsByGroup[group], ", "))
			}
			return nil
		},
	}
}
