package assets

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/at-ishikawa/nounquiz/internal/sentence"
)

const answerSheetTemplateName = "answer-sheet.md.go.tmpl"

//go:embed templates/answer-sheet.md.go.tmpl
var fallbackAnswerSheetTemplate string

// AnswerSheet is the data passed to the answer sheet template.
type AnswerSheet struct {
	Groups []AnswerSheetGroup
}

type AnswerSheetGroup struct {
	Name  string
	Tests []AnswerSheetTest
}

type AnswerSheetTest struct {
	Name      string
	Sentences []AnswerSheetSentence
}

// AnswerSheetSentence is numbered by its position in the whole sheet.
type AnswerSheetSentence struct {
	Number   int
	Title    string
	Sentence string
	Nouns    []string
}

// NewAnswerSheet groups records by group, then test, in first appearance order.
func NewAnswerSheet(records []sentence.Record) AnswerSheet {
	var sheet AnswerSheet
	groupIndex := make(map[string]int)
	testIndex := make(map[[2]string]int)

	for i, record := range records {
		g, ok := groupIndex[record.Group]
		if !ok {
			g = len(sheet.Groups)
			groupIndex[record.Group] = g
			sheet.Groups = append(sheet.Groups, AnswerSheetGroup{Name: record.Group})
		}
		group := &sheet.Groups[g]

		key := [2]string{record.Group, record.Test}
		ti, ok := testIndex[key]
		if !ok {
			ti = len(group.Tests)
			testIndex[key] = ti
			group.Tests = append(group.Tests, AnswerSheetTest{Name: record.Test})
		}
		group.Tests[ti].Sentences = append(group.Tests[ti].Sentences, AnswerSheetSentence{
			Number:   i + 1,
			Title:    record.Title,
			Sentence: record.Sentence,
			Nouns:    record.Nouns,
		})
	}
	return sheet
}

// WriteAnswerSheet renders records with the template at templatePath, or the
// embedded template when templatePath is empty or cannot be parsed.
func WriteAnswerSheet(output io.Writer, templatePath string, records []sentence.Record) error {
	tmpl, err := parseTemplateWithFallback(templatePath, answerSheetTemplateName, fallbackAnswerSheetTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, NewAnswerSheet(records)); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
