package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/nounquiz/internal/bootstrap"
	"github.com/at-ishikawa/nounquiz/internal/config"
	"github.com/at-ishikawa/nounquiz/internal/source"
)

// SourceType is a pflag.Value restricted to the supported source types.
type SourceType string

// Set implements pflag.Value.
func (s *SourceType) Set(v string) error {
	for _, t := range allSourceTypes {
		if v == t {
			*s = SourceType(v)
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, valid values are %v", v, allSourceTypes)
}

// String implements pflag.Value.
func (s *SourceType) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SourceType) Type() string {
	return "SourceType"
}

var (
	_              pflag.Value = (*SourceType)(nil)
	allSourceTypes             = []string{source.TypeExcel, source.TypeCSV, source.TypeYAML, source.TypeDatabase}
)

// sourceFlags override the configured sentence source.
type sourceFlags struct {
	sourceType SourceType
	path       string
	sheet      string
}

func (f *sourceFlags) FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("source", pflag.ContinueOnError)
	flags.Var(&f.sourceType, "type", fmt.Sprintf("Source type. Options: %v. Detected from the file extension by default", allSourceTypes))
	flags.StringVar(&f.path, "source", "", "Path of the sentence source")
	flags.StringVar(&f.sheet, "sheet", "", "Excel sheet name. The first sheet by default")
	return flags
}

func (f *sourceFlags) apply(cfg *config.SourceConfig) {
	if f.path != "" {
		cfg.Path = f.path
		cfg.Type = ""
		cfg.Sheet = ""
	}
	if f.sourceType != "" {
		cfg.Type = string(f.sourceType)
	}
	if f.sheet != "" {
		cfg.Sheet = f.sheet
	}
}

func loadConfig(sources *sourceFlags) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	sources.apply(&cfg.Source)
	return cfg, nil
}

// openQuiz loads the configuration and the shared resources. Callers close
// the returned app when they are done.
func openQuiz(ctx context.Context, sources *sourceFlags) (*bootstrap.Quiz, *bootstrap.App, error) {
	cfg, err := loadConfig(sources)
	if err != nil {
		return nil, nil, err
	}

	app := bootstrap.New()
	quiz, err := bootstrap.NewQuiz(ctx, app, cfg)
	if err != nil {
		_ = app.Close(ctx)
		return nil, nil, fmt.Errorf("bootstrap.NewQuiz() > %w", err)
	}
	return quiz, app, nil
}
