// Package testutil provides shared test helpers for creating config files and sentence fixtures.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SentencesHeader is the header written by WriteSentencesCSV.
var SentencesHeader = []string{"sentence", "title", "test", "group", "manual_nouns"}

// DefaultSentences have manual nouns so that no tagger decides the answers.
var DefaultSentences = [][]string{
	{"The cat sat on the mat.", "Cats", "test1", "book1", "cat, mat"},
	{"John bought a car.", "John", "test2", "book1", "John, car"},
	{"", "", "", "", ""},
	{"Birds fly.", "Birds", "test1", "book2", "Birds"},
}

// WriteSentencesCSV writes rows under SentencesHeader to dir/name and returns the path.
func WriteSentencesCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, file.Close())
	}()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.Write(SentencesHeader))
	require.NoError(t, writer.WriteAll(rows))
	return path
}

// SetupTestConfig writes content to dir/config.yml and returns its path.
func SetupTestConfig(t *testing.T, dir, content string) string {
	t.Helper()

	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

// SetupWorkspace makes a temporary directory the working and home directory,
// writes DefaultSentences to sentences.csv, and writes config.yml when config is not empty.
func SetupWorkspace(t *testing.T, config string) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	WriteSentencesCSV(t, dir, "sentences.csv", DefaultSentences)
	if config != "" {
		SetupTestConfig(t, dir, config)
	}
	return dir
}
