package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/nounquiz/internal/nouns"
	"github.com/at-ishikawa/nounquiz/internal/sentence"
)

// ErrEmptySentence is the cause of a row error for a row without a sentence.
var ErrEmptySentence = errors.New("sentence is empty")

// Stage tells which step of a load failed.
type Stage string

const (
	StageOpen    Stage = "open"
	StageColumns Stage = "columns"
	StageRow     Stage = "row"
)

// LoadError describes why a source could not be turned into records.
type LoadError struct {
	Stage    Stage
	Location string
	// Row is set for StageRow only.
	Row int
	Err error
}

func (e *LoadError) Error() string {
	if e.Stage == StageRow {
		return fmt.Sprintf("load %s: row %d: %v", e.Location, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Location, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NounExtractor returns the automatic answer key of a sentence.
type NounExtractor interface {
	Extract(ctx context.Context, sentence string) ([]string, error)
}

// Loader builds sentence records from the rows of a RowReader.
type Loader struct {
	reader    RowReader
	extractor NounExtractor
}

// NewLoader creates a new Loader.
func NewLoader(reader RowReader, extractor NounExtractor) *Loader {
	return &Loader{
		reader:    reader,
		extractor: extractor,
	}
}

// Load reads every row in source order. Blank rows are skipped and the
// first failing row aborts the load.
func (l *Loader) Load(ctx context.Context) ([]sentence.Record, error) {
	location := l.reader.Location()
	rows, err := l.reader.ReadRows(ctx)
	if err != nil {
		stage := StageOpen
		if errors.Is(err, ErrMissingColumn) {
			stage = StageColumns
		}
		return nil, &LoadError{Stage: stage, Location: location, Err: err}
	}
	slog.Default().Info("read sentence source",
		"location", location,
		"rows", len(rows),
	)

	records := make([]sentence.Record, 0, len(rows))
	for _, row := range rows {
		if row.IsBlank() {
			continue
		}
		record, err := l.record(ctx, row)
		if err != nil {
			return nil, &LoadError{Stage: StageRow, Location: location, Row: row.Number, Err: err}
		}
		records = append(records, record)
	}
	return records, nil
}

func (l *Loader) record(ctx context.Context, row Row) (sentence.Record, error) {
	if strings.TrimSpace(row.Sentence) == "" {
		return sentence.Record{}, ErrEmptySentence
	}

	var answer []string
	if row.ManualNouns != nil {
		answer = nouns.SplitManual(*row.ManualNouns)
	} else {
		var err error
		answer, err = l.extractor.Extract(ctx, row.Sentence)
		if err != nil {
			return sentence.Record{}, fmt.Errorf("extractor.Extract() > %w", err)
		}
	}

	slog.Default().Debug("loaded sentence",
		"row", row.Number,
		"nouns", answer,
		"manual", row.ManualNouns != nil,
	)
	return sentence.NewRecord(row.Sentence, row.Title, answer, row.Test, row.Group), nil
}
