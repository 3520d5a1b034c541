package config

import (
	"errors"
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Source    SourceConfig    `mapstructure:"source"`
	Tagger    TaggerConfig    `mapstructure:"tagger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

type TemplatesConfig struct {
	AnswerSheetTemplate string `mapstructure:"answer_sheet_template" validate:"omitempty,file"`
}

type ServerConfig struct {
	Port           int        `mapstructure:"port" validate:"min=1,max=65535"`
	AudioDirectory string     `mapstructure:"audio_directory"`
	CORS           CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SourceConfig points at the tabular sentence source.
// An empty Type is detected from the extension of Path.
type SourceConfig struct {
	Type  string `mapstructure:"type" validate:"omitempty,oneof=excel csv yaml database"`
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

type TaggerConfig struct {
	Language string             `mapstructure:"language" validate:"oneof=english japanese remote"`
	Remote   RemoteTaggerConfig `mapstructure:"remote"`
}

type RemoteTaggerConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"omitempty,url"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"min=0"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite pgx"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Path            string            `mapstructure:"path"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

var ErrRemoteTaggerURL = errors.New("tagger.remote.base_url is required when tagger.language is remote")

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := NewValidator("mapstructure")
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/nounquiz")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 5001)
	v.SetDefault("server.audio_directory", "answer_sentences")
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("source.type", "")
	v.SetDefault("source.path", "answer_sentences.xlsx")
	v.SetDefault("source.sheet", "")
	v.SetDefault("tagger.language", "english")
	v.SetDefault("tagger.remote.base_url", "")
	v.SetDefault("tagger.remote.timeout_seconds", 10)
	v.SetDefault("tagger.remote.max_retry_attempts", 3)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.path", "nounquiz.db")
	// Template is optional - if not specified, the embedded template is used
	v.SetDefault("templates.answer_sheet_template", "")

	// Secrets and deployment specific endpoints come from the environment only
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("tagger.remote.base_url", "NOUNQUIZ_TAGGER_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind NOUNQUIZ_TAGGER_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}
	if cfg.Tagger.Language == "remote" && cfg.Tagger.Remote.BaseURL == "" {
		return nil, ErrRemoteTaggerURL
	}

	return &cfg, nil
}
