package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/at-ishikawa/nounquiz/internal/mocks/cli"
	"github.com/at-ishikawa/nounquiz/internal/sentence"
)

func init() {
	color.NoColor = true
}

func newTestStore() *sentence.Store {
	return sentence.NewStore([]sentence.Record{
		sentence.NewRecord("The cat sat on the mat.", "Cats", []string{"cat", "mat"}, "", ""),
		sentence.NewRecord("John bought a car.", "", []string{"John", "car"}, "", ""),
		sentence.NewRecord("Birds fly.", "Birds", []string{"Birds"}, "", ""),
	})
}

func TestNewNounQuizCLI(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "all sentences", count: 0, want: 3},
		{name: "limited", count: 2, want: 2},
		{name: "count over size", count: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := NewNounQuizCLI(newTestStore(), tt.count, strings.NewReader(""), &bytes.Buffer{})
			assert.Equal(t, tt.want, cli.GetCardCount())
		})
	}
}

func TestNounQuizCLI_Limit(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "zero keeps all", count: 0, want: 3},
		{name: "negative keeps all", count: -1, want: 3},
		{name: "limited", count: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := NewNounQuizCLI(newTestStore(), 0, strings.NewReader(""), &bytes.Buffer{})
			cli.Limit(tt.count)
			assert.Equal(t, tt.want, cli.GetCardCount())
		})
	}
}

func TestNounQuizCLI_ShuffleCards(t *testing.T) {
	cli := NewNounQuizCLI(newTestStore(), 0, strings.NewReader(""), &bytes.Buffer{})
	cli.ShuffleCards()

	var sentences []string
	for _, card := range cli.cards {
		sentences = append(sentences, card.Sentence)
	}
	assert.ElementsMatch(t, []string{"The cat sat on the mat.", "John bought a car.", "Birds fly."}, sentences)
}

func TestNounQuizCLI_Session(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		count          int
		wantReturn     error
		wantErr        bool
		wantCorrect    int
		wantAsked      int
		wantCardsAfter int
		wantOutput     []string
	}{
		{
			name:           "correct answer",
			input:          "MAT, cat\n",
			wantCorrect:    1,
			wantAsked:      1,
			wantCardsAfter: 2,
			wantOutput:     []string{"[Cats] The cat sat on the mat.", "Nouns (2, comma separated): ", "✅ It's correct."},
		},
		{
			name:           "wrong answer shows the normalized key",
			input:          "cat\n",
			wantAsked:      1,
			wantCardsAfter: 2,
			wantOutput:     []string{"❌ It's wrong. The nouns are cat, mat"},
		},
		{
			name:           "last line without newline",
			input:          "cat,mat",
			wantCorrect:    1,
			wantAsked:      1,
			wantCardsAfter: 2,
		},
		{
			name:           "closed input ends the quiz",
			input:          "",
			wantReturn:     errEnd,
			wantCardsAfter: 3,
			wantOutput:     []string{"Score: 0/0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cli := NewNounQuizCLI(newTestStore(), tt.count, strings.NewReader(tt.input), &out)

			err := cli.Session(context.Background())
			if tt.wantReturn != nil {
				assert.ErrorIs(t, err, tt.wantReturn)
			} else {
				require.NoError(t, err)
			}

			correct, asked := cli.Score()
			assert.Equal(t, tt.wantCorrect, correct)
			assert.Equal(t, tt.wantAsked, asked)
			assert.Equal(t, tt.wantCardsAfter, cli.GetCardCount())
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}

	t.Run("sentences shared by two titles are graded by card", func(t *testing.T) {
		store := sentence.NewStore([]sentence.Record{
			sentence.NewRecord("Same text.", "A", []string{"alpha"}, "", ""),
			sentence.NewRecord("Same text.", "B", []string{"beta"}, "", ""),
		})
		var out bytes.Buffer
		cli := NewNounQuizCLI(store, 0, strings.NewReader("alpha\nbeta\n"), &out)

		require.NoError(t, cli.Session(context.Background()))
		require.NoError(t, cli.Session(context.Background()))

		correct, asked := cli.Score()
		assert.Equal(t, 2, correct)
		assert.Equal(t, 2, asked)
		assert.Contains(t, out.String(), "[B] Same text.")
		assert.NotContains(t, out.String(), "It's wrong")
	})

	t.Run("input closed after an answer prints the score", func(t *testing.T) {
		var out bytes.Buffer
		cli := NewNounQuizCLI(newTestStore(), 0, strings.NewReader("cat, mat\n"), &out)

		require.NoError(t, cli.Session(context.Background()))
		assert.ErrorIs(t, cli.Session(context.Background()), errEnd)
		assert.Contains(t, out.String(), "Score: 1/1")
	})

	t.Run("no more sentences", func(t *testing.T) {
		var out bytes.Buffer
		cli := NewNounQuizCLI(sentence.NewStore(nil), 0, strings.NewReader(""), &out)

		err := cli.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
		assert.Contains(t, out.String(), "No more sentences. Score: 0/0")
	})
}

func TestInteractiveQuizCLI_Run(t *testing.T) {
	t.Run("whole quiz", func(t *testing.T) {
		var out bytes.Buffer
		cli := NewNounQuizCLI(newTestStore(), 0, strings.NewReader("cat,mat\njohn\nbirds\n"), &out)

		require.NoError(t, cli.Run(context.Background(), cli))
		correct, asked := cli.Score()
		assert.Equal(t, 2, correct)
		assert.Equal(t, 3, asked)
		assert.Contains(t, out.String(), "Score: 2/3")
	})

	tests := []struct {
		name      string
		setupMock func(session *mock_cli.MockSession)
		wantErr   bool
	}{
		{
			name: "stops at the end",
			setupMock: func(session *mock_cli.MockSession) {
				gomock.InOrder(
					session.EXPECT().Session(gomock.Any()).Return(nil),
					session.EXPECT().Session(gomock.Any()).Return(errEnd),
				)
			},
		},
		{
			name: "returns session errors",
			setupMock: func(session *mock_cli.MockSession) {
				session.EXPECT().Session(gomock.Any()).Return(errors.New("read failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := mock_cli.NewMockSession(ctrl)
			tt.setupMock(session)

			cli := newInteractiveQuizCLI(strings.NewReader(""), &bytes.Buffer{})
			err := cli.Run(context.Background(), session)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "trimmed pieces", line: " cat , mat \n", want: []string{"cat", "mat"}},
		{name: "repeats are kept", line: "cat,cat", want: []string{"cat", "cat"}},
		{name: "empty line", line: "\n", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAnswers(tt.line))
		})
	}
}
