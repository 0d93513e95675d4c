package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// DefaultLanguage overrides the process locale as the default target language.
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:""`
	// MessageLocale selects the language of error messages; empty uses the process locale.
	MessageLocale string `envconfig:"MESSAGE_LOCALE" default:""`

	TranslationProvider string        `envconfig:"TRANSLATION_PROVIDER" default:"local"`
	RequestTimeout      time.Duration `envconfig:"TRANSLATION_TIMEOUT" default:"2m"`

	// Content length limits are in runes; 0 keeps the translator's own limit.
	LocalEndpoint     string `envconfig:"TRANSLATION_ENDPOINT" default:"http://127.0.0.1:8845/v1"`
	LocalModel        string `envconfig:"TRANSLATION_MODEL" default:"tencent/HY-MT1.5-7B"`
	LocalContentLimit int    `envconfig:"LOCAL_CONTENT_LENGTH_LIMIT" default:"0"`

	GoogleEndpoint     string `envconfig:"GOOGLE_TRANSLATE_ENDPOINT" default:"https://translation.googleapis.com/language/translate/v2"`
	GoogleAPIKey       string `envconfig:"GOOGLE_API_KEY" default:""`
	GoogleContentLimit int    `envconfig:"GOOGLE_CONTENT_LENGTH_LIMIT" default:"0"`

	// DatabaseURL enables the fault ledger when set.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"4"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.TranslationProvider) == "" {
		return fmt.Errorf("TRANSLATION_PROVIDER is required")
	}
	if c.LocalContentLimit < 0 {
		return fmt.Errorf("LOCAL_CONTENT_LENGTH_LIMIT must be >= 0")
	}
	if c.GoogleContentLimit < 0 {
		return fmt.Errorf("GOOGLE_CONTENT_LENGTH_LIMIT must be >= 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("TRANSLATION_TIMEOUT must be > 0")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// FaultLedgerEnabled reports whether faults should be persisted.
func (c *Config) FaultLedgerEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
