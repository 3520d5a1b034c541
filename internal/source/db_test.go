package source

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/nounquiz/internal/config"
	"github.com/at-ishikawa/nounquiz/internal/database"
	"github.com/at-ishikawa/nounquiz/schemas"
)

func TestDBRepository_FindAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBRepository(sqlx.NewDb(db, "mysql"))

	rows := sqlmock.NewRows(sentenceColumns).
		AddRow(1, "The cat sat.", "Cats", "t1", "g1", nil).
		AddRow(2, "John ran.", "John", "all", "all", "John").
		AddRow(3, "Empty override.", "Empty", "all", "all", "").
		AddRow(4, "Birds fly.", "Birds", "  ", " g2 ", nil)
	mock.ExpectQuery("SELECT position, sentence, title, test_name, group_name, manual_nouns FROM quiz_sentences ORDER BY position").
		WillReturnRows(rows)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Number: 1, Sentence: "The cat sat.", Title: "Cats", Test: "t1", Group: "g1"},
		{Number: 2, Sentence: "John ran.", Title: "John", Test: "all", Group: "all", ManualNouns: ptr("John")},
		{Number: 3, Sentence: "Empty override.", Title: "Empty", Test: "all", Group: "all"},
		{Number: 4, Sentence: "Birds fly.", Title: "Birds", Test: "", Group: "g2"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_ReplaceAll(t *testing.T) {
	tests := []struct {
		name      string
		rows      []Row
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "deletes and inserts in one transaction",
			rows: []Row{
				{Number: 2, Sentence: "The cat sat.", Title: "Cats"},
				{Number: 4, Sentence: "John ran.", Title: "John", Test: "t1", Group: "g1", ManualNouns: ptr("John")},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM quiz_sentences").WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec("INSERT INTO quiz_sentences \\(position, sentence, title, test_name, group_name, manual_nouns\\) VALUES \\(\\?, \\?, \\?, \\?, \\?, \\?\\), \\(\\?, \\?, \\?, \\?, \\?, \\?\\)").
					WithArgs(
						1, "The cat sat.", "Cats", "", "", sql.NullString{},
						2, "John ran.", "John", "t1", "g1", sql.NullString{String: "John", Valid: true},
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name: "empty rows only clear the table",
			rows: nil,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM quiz_sentences").WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
		},
		{
			name: "insert failure rolls back",
			rows: []Row{{Sentence: "The cat sat.", Title: "Cats"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM quiz_sentences").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO quiz_sentences").WillReturnError(fmt.Errorf("duplicate key"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)
			err = NewDBRepository(sqlx.NewDb(db, "mysql")).ReplaceAll(context.Background(), tt.rows)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "quiz.db"),
	}
	require.NoError(t, database.Migrate(cfg, schemas.Migrations))
	db, err := database.Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBRepository(db)
	rows := make([]Row, 0, 150)
	for i := range 150 {
		rows = append(rows, Row{Sentence: fmt.Sprintf("Sentence %d.", i), Title: fmt.Sprintf("T%d", i)})
	}
	rows[1].ManualNouns = ptr("cat, mat")

	require.NoError(t, repo.ReplaceAll(ctx, rows))
	require.NoError(t, repo.ReplaceAll(ctx, rows))

	got, err := repo.ReadRows(ctx)
	require.NoError(t, err)
	require.Len(t, got, 150)
	assert.Equal(t, Row{Number: 1, Sentence: "Sentence 0.", Title: "T0"}, got[0])
	assert.Equal(t, Row{Number: 2, Sentence: "Sentence 1.", Title: "T1", ManualNouns: ptr("cat, mat")}, got[1])
	assert.Equal(t, "Sentence 149.", got[149].Sentence)
	assert.Equal(t, "database:quiz_sentences", repo.Location())
}
