package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/at-ishikawa/nounquiz/internal/bootstrap"
	"github.com/at-ishikawa/nounquiz/internal/config"
	"github.com/at-ishikawa/nounquiz/internal/server"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	setupLogger(os.Getenv("NOUNQUIZ_DEBUG") != "")
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Warn("failed to load .env", "error", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	app := bootstrap.New()
	defer func() {
		_ = app.Close(context.Background())
	}()
	srv, err := newServer(ctx, app, cfg)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("net.Listen(%s) > %w", srv.Addr, err)
	}
	return serve(ctx, app, srv, listener)
}

// newServer loads the sentences once and builds the HTTP server over them.
func newServer(ctx context.Context, app *bootstrap.App, cfg *config.Config) (*http.Server, error) {
	quiz, err := bootstrap.NewQuiz(ctx, app, cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap.NewQuiz() > %w", err)
	}

	handler, err := server.NewQuizHandler(quiz.LoadStore(ctx))
	if err != nil {
		return nil, fmt.Errorf("server.NewQuizHandler() > %w", err)
	}
	return server.NewServer(server.NewRouter(handler, cfg.Server), cfg.Server), nil
}

// serve runs srv on listener until ctx is cancelled or a signal arrives.
func serve(ctx context.Context, app *bootstrap.App, srv *http.Server, listener net.Listener) error {
	app.AddShutdownHook(srv.Shutdown)
	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.Serve() > %w", err)
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("NOUNQUIZ_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}
