// Package bootstrap holds the flags shared by all subcommands and builds the
// configuration, logger and service graph from them.
package bootstrap

import (
	"go.uber.org/zap"

	"emotion-audio/internal/app"
	"emotion-audio/internal/config"
	"emotion-audio/internal/logging"
)

var (
	ConfigPath string
	Verbose    bool
)

// Load reads the configuration and creates the logger
func Load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log.Development, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// Initialize builds the service graph. The cleanup closes the cache and flushes the logger.
func Initialize() (*config.Config, *app.App, func(), error) {
	cfg, logger, err := Load()
	if err != nil {
		return nil, nil, nil, err
	}

	application, cleanup, err := app.InitializeApp(cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, nil, err
	}

	return cfg, application, func() {
		cleanup()
		logger.Sync()
	}, nil
}
