package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/translate/internal/cli"
	"horse.fit/translate/internal/config"
	"horse.fit/translate/internal/db"
	"horse.fit/translate/internal/faultlog"
	"horse.fit/translate/internal/language"
	"horse.fit/translate/internal/logging"
	"horse.fit/translate/internal/messages"
	"horse.fit/translate/internal/translation"
)

// runtime holds the wired dependencies shared by commands.
type runtime struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *translation.Registry
	pool     *db.Pool
	recorder *faultlog.Recorder
}

// loadRuntime loads env, config and logger and builds the translator registry.
// The fault ledger is connected only when DATABASE_URL is set and withLedger is true.
func loadRuntime(envLoader *cli.EnvLoader, withLedger bool) (*runtime, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	locale := cfg.MessageLocale
	if locale == "" {
		locale = language.NewCatalog("").Default().Code
	}
	bundle := messages.New(locale)
	catalog := language.NewCatalog(cfg.DefaultLanguage)

	rt := &runtime{
		cfg:      cfg,
		logger:   logger,
		registry: translation.NewRegistryFromConfig(cfg, bundle, catalog),
	}

	if withLedger && cfg.FaultLedgerEnabled() {
		dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dbCancel()

		pool, err := db.NewPool(dbCtx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("connect fault ledger failed")
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		rt.pool = pool
	}

	if rt.pool != nil {
		rt.recorder = faultlog.NewRecorder(rt.pool, logger)
	} else {
		rt.recorder = faultlog.NewRecorder(nil, logger)
	}
	return rt, nil
}

func (rt *runtime) Close() {
	if rt == nil || rt.pool == nil {
		return
	}
	if err := rt.pool.Close(); err != nil {
		rt.logger.Warn().Err(err).Msg("close database pool failed")
	}
}
