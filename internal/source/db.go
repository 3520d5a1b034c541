package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/nounquiz/internal/database"
)

const sentencesTable = "quiz_sentences"

var sentenceColumns = []string{"position", "sentence", "title", "test_name", "group_name", "manual_nouns"}

type sentenceRow struct {
	Position    int            `db:"position"`
	Sentence    string         `db:"sentence"`
	Title       string         `db:"title"`
	TestName    string         `db:"test_name"`
	GroupName   string         `db:"group_name"`
	ManualNouns sql.NullString `db:"manual_nouns"`
}

// DBRepository stores source rows in the quiz_sentences table.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) Location() string {
	return "database:" + sentencesTable
}

func (r *DBRepository) ReadRows(ctx context.Context) ([]Row, error) {
	return r.FindAll(ctx)
}

// FindAll returns every stored row ordered by position.
func (r *DBRepository) FindAll(ctx context.Context) ([]Row, error) {
	var records []sentenceRow
	query := "SELECT position, sentence, title, test_name, group_name, manual_nouns FROM " + sentencesTable + " ORDER BY position"
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("db.SelectContext(%s) > %w", sentencesTable, err)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := Row{
			Number:   record.Position,
			Sentence: record.Sentence,
			Title:    record.Title,
			Test:     strings.TrimSpace(record.TestName),
			Group:    strings.TrimSpace(record.GroupName),
		}
		if record.ManualNouns.Valid && record.ManualNouns.String != "" {
			manual := record.ManualNouns.String
			row.ManualNouns = &manual
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReplaceAll swaps the stored rows for rows in a single transaction.
// Positions follow the order of rows starting at 1.
func (r *DBRepository) ReplaceAll(ctx context.Context, rows []Row) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+sentencesTable); err != nil {
			return fmt.Errorf("tx.ExecContext(delete %s) > %w", sentencesTable, err)
		}

		const batchSize = 100
		for i := 0; i < len(rows); i += batchSize {
			end := min(i+batchSize, len(rows))
			batch := rows[i:end]

			query := database.BuildMultiRowInsert(sentencesTable, sentenceColumns, len(batch))
			args := make([]interface{}, 0, len(batch)*len(sentenceColumns))
			for j, row := range batch {
				var manual sql.NullString
				if row.ManualNouns != nil {
					manual = sql.NullString{String: *row.ManualNouns, Valid: true}
				}
				args = append(args, i+j+1, row.Sentence, row.Title, row.Test, row.Group, manual)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("tx.ExecContext(insert %s) > %w", sentencesTable, err)
			}
		}
		return nil
	})
}
