package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/at-ishikawa/nounquiz/internal/bootstrap"
	"github.com/at-ishikawa/nounquiz/internal/config"
	"github.com/at-ishikawa/nounquiz/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("os/signal.loop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NOUNQUIZ_CONFIG", testutil.SetupTestConfig(t, dir, "server:\n  port: 6001\nsource:\n  path: sentences.csv\n"))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6001, cfg.Server.Port)
	assert.Equal(t, "sentences.csv", cfg.Source.Path)
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteSentencesCSV(t, dir, "sentences.csv", [][]string{{"Birds fly.", "Birds", "", "", "Birds"}})

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 5001, AudioDirectory: dir},
		Source: config.SourceConfig{Path: csvPath},
		Tagger: config.TaggerConfig{Language: "english"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := bootstrap.New()
	srv, err := newServer(ctx, app, cfg)
	require.NoError(t, err)
	assert.Equal(t, ":5001", srv.Addr)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, app, srv, listener)
	}()

	client := &http.Client{Timeout: 5 * time.Second}
	defer client.CloseIdleConnections()
	resp, err := client.Get(fmt.Sprintf("http://%s/api/get-sentence-by-title?title=Birds", listener.Addr()))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Birds fly.", got["sentence"])
	assert.Equal(t, float64(1), got["noun_count"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServer_UnreachableDatabase(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 5001},
		Source: config.SourceConfig{Type: "database"},
		Tagger: config.TaggerConfig{Language: "english"},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "missing", "quiz.db"),
		},
	}

	app := bootstrap.New()
	defer func() {
		require.NoError(t, app.Close(context.Background()))
	}()
	srv, err := newServer(context.Background(), app, cfg)
	require.NoError(t, err)
	require.NotNil(t, srv)
}
