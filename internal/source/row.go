// Package source reads quiz sentences from tabular resources and turns them
// into sentence records.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Column names recognised in a header row.
const (
	ColumnSentence    = "sentence"
	ColumnTitle       = "title"
	ColumnTest        = "test"
	ColumnGroup       = "group"
	ColumnGrouping    = "grouping"
	ColumnManualNouns = "manual_nouns"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// Row is one data row of a source. Number is the position a user would look
// up in the resource: the spreadsheet line for tables, the 1-based entry for
// YAML lists, the stored position for the database.
type Row struct {
	Number      int
	Sentence    string
	Title       string
	Test        string
	Group       string
	ManualNouns *string
}

// IsBlank reports whether the row carries no content at all.
func (r Row) IsBlank() bool {
	if r.ManualNouns != nil && strings.TrimSpace(*r.ManualNouns) != "" {
		return false
	}
	return strings.TrimSpace(r.Sentence) == "" &&
		strings.TrimSpace(r.Title) == "" &&
		strings.TrimSpace(r.Test) == "" &&
		strings.TrimSpace(r.Group) == ""
}

// RowReader produces the rows of one tabular resource in source order.
//
//go:generate mockgen -source=row.go -destination=../mocks/source/mock_row_reader.go -package=mock_source
type RowReader interface {
	ReadRows(ctx context.Context) ([]Row, error)
	// Location names the resource in log messages and errors.
	Location() string
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type columnIndex struct {
	sentence, title, test, group, manualNouns int
}

func newColumnIndex(header []string) (columnIndex, error) {
	index := columnIndex{sentence: -1, title: -1, test: -1, group: -1, manualNouns: -1}
	for i, name := range header {
		switch normalizeHeader(name) {
		case ColumnSentence:
			index.sentence = i
		case ColumnTitle:
			index.title = i
		case ColumnTest:
			index.test = i
		case ColumnGroup, ColumnGrouping:
			if index.group < 0 {
				index.group = i
			}
		case ColumnManualNouns:
			index.manualNouns = i
		}
	}

	var missing []string
	if index.sentence < 0 {
		missing = append(missing, ColumnSentence)
	}
	if index.title < 0 {
		missing = append(missing, ColumnTitle)
	}
	if len(missing) > 0 {
		return index, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// rowsFromTable treats the first record as the header. Records may be
// shorter than the header; missing cells are empty.
func rowsFromTable(table [][]string) ([]Row, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: %s, %s", ErrMissingColumn, ColumnSentence, ColumnTitle)
	}
	index, err := newColumnIndex(table[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(table)-1)
	for i, record := range table[1:] {
		row := Row{
			Number:   i + 2,
			Sentence: cell(record, index.sentence),
			Title:    cell(record, index.title),
			Test:     strings.TrimSpace(cell(record, index.test)),
			Group:    strings.TrimSpace(cell(record, index.group)),
		}
		if manual := cell(record, index.manualNouns); manual != "" {
			row.ManualNouns = &manual
		}
		rows = append(rows, row)
	}
	return rows, nil
}
