package source_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_pos "github.com/at-ishikawa/nounquiz/internal/mocks/pos"
	mock_source "github.com/at-ishikawa/nounquiz/internal/mocks/source"
	"github.com/at-ishikawa/nounquiz/internal/nouns"
	"github.com/at-ishikawa/nounquiz/internal/pos"
	"github.com/at-ishikawa/nounquiz/internal/sentence"
	"github.com/at-ishikawa/nounquiz/internal/source"
)

func strPtr(s string) *string {
	return &s
}

func TestLoader_Load(t *testing.T) {
	catTokens := []pos.Token{
		{Surface: "The", Category: "DT"},
		{Surface: "cat", Category: pos.CategoryNoun},
		{Surface: "sat", Category: "VBD"},
	}

	tests := []struct {
		name        string
		rows        []source.Row
		readErr     error
		setupTagger func(tagger *mock_pos.MockTagger)
		want        []sentence.Record
		wantStage   source.Stage
		wantRow     int
		wantErrIs   error
	}{
		{
			name: "automatic extraction with default tags",
			rows: []source.Row{
				{Number: 2, Sentence: "The cat sat.", Title: "Cats"},
			},
			setupTagger: func(tagger *mock_pos.MockTagger) {
				tagger.EXPECT().Tag(gomock.Any(), "The cat sat.").Return(catTokens, nil)
			},
			want: []sentence.Record{
				{Sentence: "The cat sat.", Title: "Cats", Nouns: []string{"cat"}, Test: "all", Group: "all"},
			},
		},
		{
			name: "manual nouns skip the tagger",
			rows: []source.Row{
				{Number: 2, Sentence: "The cat sat.", Title: "Cats", Test: "t1", Group: "g1", ManualNouns: strPtr(" cat , , mat, cat ")},
			},
			want: []sentence.Record{
				{Sentence: "The cat sat.", Title: "Cats", Nouns: []string{"cat", "mat"}, Test: "t1", Group: "g1"},
			},
		},
		{
			name: "whitespace manual nouns give an empty key",
			rows: []source.Row{
				{Number: 2, Sentence: "The cat sat.", Title: "Cats", ManualNouns: strPtr("   ")},
			},
			want: []sentence.Record{
				{Sentence: "The cat sat.", Title: "Cats", Nouns: []string{}, Test: "all", Group: "all"},
			},
		},
		{
			name: "blank rows are skipped and order kept",
			rows: []source.Row{
				{Number: 2, Sentence: "First.", Title: "A", ManualNouns: strPtr("first")},
				{Number: 3},
				{Number: 4, Sentence: "Second.", Title: "B", ManualNouns: strPtr("second")},
			},
			want: []sentence.Record{
				{Sentence: "First.", Title: "A", Nouns: []string{"first"}, Test: "all", Group: "all"},
				{Sentence: "Second.", Title: "B", Nouns: []string{"second"}, Test: "all", Group: "all"},
			},
		},
		{
			name: "empty sentence aborts the load",
			rows: []source.Row{
				{Number: 2, Sentence: "First.", Title: "A", ManualNouns: strPtr("first")},
				{Number: 3, Sentence: "  ", Title: "B"},
			},
			wantStage: source.StageRow,
			wantRow:   3,
			wantErrIs: source.ErrEmptySentence,
		},
		{
			name: "tagger error aborts the load",
			rows: []source.Row{
				{Number: 5, Sentence: "The cat sat.", Title: "Cats"},
			},
			setupTagger: func(tagger *mock_pos.MockTagger) {
				tagger.EXPECT().Tag(gomock.Any(), "The cat sat.").Return(nil, errors.New("model missing"))
			},
			wantStage: source.StageRow,
			wantRow:   5,
			wantErrIs: nouns.ErrTagger,
		},
		{
			name:      "missing column",
			readErr:   source.ErrMissingColumn,
			wantStage: source.StageColumns,
			wantErrIs: source.ErrMissingColumn,
		},
		{
			name:      "unreadable resource",
			readErr:   os.ErrNotExist,
			wantStage: source.StageOpen,
			wantErrIs: os.ErrNotExist,
		},
		{
			name: "no rows",
			rows: []source.Row{},
			want: []sentence.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := mock_source.NewMockRowReader(ctrl)
			tagger := mock_pos.NewMockTagger(ctrl)

			reader.EXPECT().Location().Return("sentences.xlsx").AnyTimes()
			reader.EXPECT().ReadRows(gomock.Any()).Return(tt.rows, tt.readErr)
			if tt.setupTagger != nil {
				tt.setupTagger(tagger)
			}

			loader := source.NewLoader(reader, nouns.NewExtractor(tagger))
			got, err := loader.Load(context.Background())

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)

				var loadErr *source.LoadError
				require.ErrorAs(t, err, &loadErr)
				assert.Equal(t, tt.wantStage, loadErr.Stage)
				assert.Equal(t, tt.wantRow, loadErr.Row)
				assert.Equal(t, "sentences.xlsx", loadErr.Location)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *source.LoadError
		want string
	}{
		{
			name: "row",
			err:  &source.LoadError{Stage: source.StageRow, Location: "a.csv", Row: 4, Err: source.ErrEmptySentence},
			want: "load a.csv: row 4: sentence is empty",
		},
		{
			name: "open",
			err:  &source.LoadError{Stage: source.StageOpen, Location: "a.csv", Err: errors.New("no such file")},
			want: "load a.csv: open: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
