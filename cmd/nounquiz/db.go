package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/nounquiz/internal/source"
)

func newDBCommand(sources *sourceFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "db",
		Short: "Manage the sentence database",
	}
	command.AddCommand(
		newDBMigrateCommand(sources),
		newDBImportCommand(sources),
	)
	return command
}

func newDBMigrateCommand(sources *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the sentence tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			if _, err := quiz.OpenDB(cmd.Context(), app); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database %s is up to date\n", quiz.Config.Database.Driver)
			return nil
		},
	}
}

func newDBImportCommand(sources *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Replace the stored sentences with the rows of a spreadsheet, CSV or YAML source",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			reader, err := source.NewReader(quiz.Config.Source, nil)
			if errors.Is(err, source.ErrNoDatabase) {
				return errors.New("db import needs a file source, pass one with --source")
			}
			if err != nil {
				return fmt.Errorf("source.NewReader() > %w", err)
			}

			// Validate the rows before the stored ones are replaced
			if _, err := source.NewLoader(reader, quiz.Extractor).Load(cmd.Context()); err != nil {
				displayLoadError(cmd.OutOrStdout(), err)
				return fmt.Errorf("import aborted: %w", err)
			}
			rows, err := reader.ReadRows(cmd.Context())
			if err != nil {
				return fmt.Errorf("reader.ReadRows() > %w", err)
			}
			filled := make([]source.Row, 0, len(rows))
			for _, row := range rows {
				if !row.IsBlank() {
					filled = append(filled, row)
				}
			}

			db, err := quiz.OpenDB(cmd.Context(), app)
			if err != nil {
				return err
			}
			if err := source.NewDBRepository(db).ReplaceAll(cmd.Context(), filled); err != nil {
				return fmt.Errorf("ReplaceAll() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sentence(s) from %s\n", len(filled), reader.Location())
			return nil
		},
	}
}
