package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/nounquiz/internal/assets"
	"github.com/at-ishikawa/nounquiz/internal/pdf"
)

func newExportCommand(sources *sourceFlags) *cobra.Command {
	var (
		output string
		asPDF  bool
	)

	command := &cobra.Command{
		Use:   "export",
		Short: "Write an answer sheet of every sentence and its nouns",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, app, err := openQuiz(cmd.Context(), sources)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close(context.Background())
			}()

			records := quiz.LoadStore(cmd.Context()).Records()
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
				}
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", output, err)
			}
			if err := assets.WriteAnswerSheet(file, quiz.Config.Templates.AnswerSheetTemplate, records); err != nil {
				_ = file.Close()
				return fmt.Errorf("assets.WriteAnswerSheet() > %w", err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("file.Close() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Answer sheet written to %s\n", output)

			if !asPDF {
				return nil
			}
			pdfPath, err := pdf.ConvertMarkdownToPDF(output)
			if err != nil {
				return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath)
			return nil
		},
	}
	command.Flags().StringVarP(&output, "output", "o", "answer-sheet.md", "Markdown file to write")
	command.Flags().BoolVar(&asPDF, "pdf", false, "Also convert the answer sheet to PDF")

	return command
}
