package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/nounquiz/internal/config"
)

const (
	TypeExcel    = "excel"
	TypeCSV      = "csv"
	TypeYAML     = "yaml"
	TypeDatabase = "database"
)

var (
	ErrUnknownType = errors.New("cannot detect the source type")
	ErrNoDatabase  = errors.New("the database source requires a database connection")
)

// DetectType returns sourceType when set, otherwise the type implied by the
// extension of path.
func DetectType(sourceType, path string) (string, error) {
	if sourceType != "" {
		return sourceType, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return TypeExcel, nil
	case ".csv":
		return TypeCSV, nil
	case ".yml", ".yaml":
		return TypeYAML, nil
	}
	return "", fmt.Errorf("%w from %q", ErrUnknownType, path)
}

// NewReader creates the RowReader for cfg. db is used by the database type only.
func NewReader(cfg config.SourceConfig, db *sqlx.DB) (RowReader, error) {
	sourceType, err := DetectType(cfg.Type, cfg.Path)
	if err != nil {
		return nil, err
	}

	switch sourceType {
	case TypeExcel:
		return NewExcelReader(cfg.Path, cfg.Sheet), nil
	case TypeCSV:
		return NewCSVReader(cfg.Path), nil
	case TypeYAML:
		return NewYAMLReader(cfg.Path), nil
	case TypeDatabase:
		if db == nil {
			return nil, ErrNoDatabase
		}
		return NewDBRepository(db), nil
	}
	return nil, fmt.Errorf("unsupported source type %q", sourceType)
}
