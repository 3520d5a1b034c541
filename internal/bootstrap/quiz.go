package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/nounquiz/internal/config"
	"github.com/at-ishikawa/nounquiz/internal/database"
	"github.com/at-ishikawa/nounquiz/internal/nouns"
	"github.com/at-ishikawa/nounquiz/internal/pos"
	"github.com/at-ishikawa/nounquiz/internal/pos/english"
	"github.com/at-ishikawa/nounquiz/internal/pos/japanese"
	"github.com/at-ishikawa/nounquiz/internal/pos/remote"
	"github.com/at-ishikawa/nounquiz/internal/sentence"
	"github.com/at-ishikawa/nounquiz/internal/source"
	"github.com/at-ishikawa/nounquiz/schemas"
)

// Quiz holds what the binaries share once the configuration is loaded.
type Quiz struct {
	Config    *config.Config
	Tagger    pos.Tagger
	Extractor *nouns.Extractor
	// DB is nil unless the source or a command needs the database.
	DB *sqlx.DB
}

// NewQuiz creates the tagger and, for the database source, the connection.
// A database that cannot be opened is logged, not returned.
// Resources are released by the shutdown hooks registered on app.
func NewQuiz(ctx context.Context, app *App, cfg *config.Config) (*Quiz, error) {
	tagger, err := NewTagger(cfg.Tagger, app)
	if err != nil {
		return nil, err
	}

	quiz := &Quiz{
		Config:    cfg,
		Tagger:    tagger,
		Extractor: nouns.NewExtractor(tagger),
	}

	sourceType, err := source.DetectType(cfg.Source.Type, cfg.Source.Path)
	if err == nil && sourceType == source.TypeDatabase {
		// An unreachable database leaves DB nil, so LoadStore falls back.
		if _, err := quiz.OpenDB(ctx, app); err != nil {
			slog.Default().Warn("cannot open the sentence database",
				"driver", cfg.Database.Driver,
				"error", err,
			)
		}
	}
	return quiz, nil
}

// NewTagger creates the tagger for the configured language.
func NewTagger(cfg config.TaggerConfig, app *App) (pos.Tagger, error) {
	language, err := pos.ParseLanguage(cfg.Language)
	if err != nil {
		return nil, err
	}

	switch language {
	case pos.LanguageJapanese:
		tagger, err := japanese.NewTagger()
		if err != nil {
			return nil, fmt.Errorf("japanese.NewTagger() > %w", err)
		}
		return tagger, nil
	case pos.LanguageRemote:
		if cfg.Remote.BaseURL == "" {
			return nil, config.ErrRemoteTaggerURL
		}
		client := remote.NewClient(
			cfg.Remote.BaseURL,
			time.Duration(cfg.Remote.TimeoutSeconds)*time.Second,
			cfg.Remote.MaxRetryAttempts,
		)
		app.AddShutdownHook(func(ctx context.Context) error {
			return client.Close()
		})
		return client, nil
	}
	return english.NewTagger(), nil
}

// OpenDB opens the configured database once and applies the embedded migrations.
func (q *Quiz) OpenDB(ctx context.Context, app *App) (*sqlx.DB, error) {
	if q.DB != nil {
		return q.DB, nil
	}

	db, err := database.Open(q.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db.PingContext() > %w", err)
	}
	if err := database.Migrate(q.Config.Database, schemas.Migrations); err != nil {
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}

	q.DB = db
	return db, nil
}

// Loader creates the loader of the configured source.
func (q *Quiz) Loader() (*source.Loader, error) {
	reader, err := source.NewReader(q.Config.Source, q.DB)
	if err != nil {
		return nil, fmt.Errorf("source.NewReader() > %w", err)
	}
	return source.NewLoader(reader, q.Extractor), nil
}

// LoadStore loads the configured source, falling back to the built-in
// sentences when it cannot be used.
func (q *Quiz) LoadStore(ctx context.Context, opts ...sentence.StoreOption) *sentence.Store {
	loader, err := q.Loader()
	if err != nil {
		slog.Default().Warn("cannot create the sentence source, using the fallback sentences",
			"error", err,
		)
		return sentence.NewStore(sentence.Fallback(), opts...)
	}
	return LoadStore(ctx, loader, opts...)
}

// RecordLoader is satisfied by source.Loader.
type RecordLoader interface {
	Load(ctx context.Context) ([]sentence.Record, error)
}

// LoadStore builds the store from loader. A load error or an empty result
// is logged and replaced by sentence.Fallback.
func LoadStore(ctx context.Context, loader RecordLoader, opts ...sentence.StoreOption) *sentence.Store {
	records, err := loader.Load(ctx)
	if err != nil {
		attrs := []any{"error", err}
		var loadErr *source.LoadError
		if errors.As(err, &loadErr) {
			attrs = append(attrs,
				"stage", loadErr.Stage,
				"location", loadErr.Location,
			)
			if loadErr.Stage == source.StageRow {
				attrs = append(attrs, "row", loadErr.Row)
			}
		}
		slog.Default().Warn("cannot load the sentences, using the fallback sentences", attrs...)
		return sentence.NewStore(sentence.Fallback(), opts...)
	}
	if len(records) == 0 {
		slog.Default().Warn("the sentence source has no sentences, using the fallback sentences")
		return sentence.NewStore(sentence.Fallback(), opts...)
	}

	slog.Default().Info("loaded sentences", "count", len(records))
	return sentence.NewStore(records, opts...)
}
