package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLReader reads a list of mappings keyed by column name.
type YAMLReader struct {
	path string
}

func NewYAMLReader(path string) *YAMLReader {
	return &YAMLReader{path: path}
}

func (r *YAMLReader) Location() string {
	return r.path
}

func (r *YAMLReader) ReadRows(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}
	var entries []map[string]any
	if err := yaml.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	return rowsFromMappings(entries)
}

// rowsFromMappings requires a column to appear in at least one entry.
func rowsFromMappings(entries []map[string]any) ([]Row, error) {
	normalized := make([]map[string]any, len(entries))
	var header []string
	seen := make(map[string]bool)
	for i, entry := range entries {
		normalized[i] = make(map[string]any, len(entry))
		for key, value := range entry {
			name := normalizeHeader(key)
			if name == ColumnGrouping {
				name = ColumnGroup
				// "group" wins over its alias.
				if _, ok := normalized[i][name]; ok {
					continue
				}
			}
			normalized[i][name] = value
			if !seen[name] {
				seen[name] = true
				header = append(header, name)
			}
		}
	}
	if _, err := newColumnIndex(header); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(entries))
	for i, entry := range normalized {
		row := Row{
			Number:   i + 1,
			Sentence: scalarString(entry[ColumnSentence]),
			Title:    scalarString(entry[ColumnTitle]),
			Test:     strings.TrimSpace(scalarString(entry[ColumnTest])),
			Group:    strings.TrimSpace(scalarString(entry[ColumnGroup])),
		}
		// Only a non-empty string is an override; numbers, lists and null are not.
		if manual, ok := entry[ColumnManualNouns].(string); ok && manual != "" {
			row.ManualNouns = &manual
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v)
	}
	return ""
}
