package main

import (
	"fmt"
	"strings"

	"digital.vasic.sweepbot/pkg/classifier"
	"digital.vasic.sweepbot/pkg/config"
	"digital.vasic.sweepbot/pkg/env"
	"digital.vasic.sweepbot/pkg/logging"
)

// app is the state shared by every command.
type app struct {
	cfg        *config.Config
	configPath string
	secrets    env.Secrets
	logger     logging.Logger
}

// bootstrap loads the configuration, the secrets and the logger.
func bootstrap(options *rootOptions) (*app, error) {
	loader := env.NewLoader()
	if err := loader.LoadOptional(options.envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", options.envFile, err)
	}

	explicit := options.configPath
	if explicit == "" {
		explicit = loader.Get(env.ConfigPath)
	}
	cfg, path, err := config.Load(explicit)
	if err != nil {
		return nil, err
	}

	secrets := env.ReadSecrets(loader)
	if err := secrets.Validate(); err != nil {
		return nil, err
	}
	if secrets.UserAgent != "" {
		cfg.Platform.UserAgent = secrets.UserAgent
	}

	logger, err := newLogger(cfg.Logging, secrets)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		logging.StringField("path", path),
		logging.StringField("env_files", strings.Join(loader.Files(), ",")),
		logging.StringField("secrets", secrets.String()),
	)

	return &app{
		cfg:        cfg,
		configPath: path,
		secrets:    secrets,
		logger:     logger,
	}, nil
}

func newLogger(cfg config.LoggingConfig, secrets env.Secrets) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zl, err := logging.NewZapLogger(logging.LoggerConfig{
		OutputPath: cfg.Output,
		Format:     cfg.Format,
		Level:      level,
		Fields:     map[string]any{"app": "sweepbot"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logging.NewRedactingLogger(zl, secrets.Values()...), nil
}

// table builds the classification table: built-in rules followed
// by the configured extra rules.
func (a *app) table() (*classifier.Table, error) {
	var extra []classifier.Entry
	for _, file := range a.cfg.Rules.Files {
		entries, err := classifier.LoadRulesFromFile(file)
		if err != nil {
			return nil, err
		}
		extra = append(extra, entries...)
	}
	for _, dir := range a.cfg.Rules.Dirs {
		entries, err := classifier.LoadRulesFromDir(dir)
		if err != nil {
			return nil, err
		}
		extra = append(extra, entries...)
	}
	t := classifier.DefaultTable()
	if len(extra) == 0 {
		return t, nil
	}
	a.logger.Info("extra classification rules loaded",
		logging.IntField("count", len(extra)),
	)
	return t.With(extra...), nil
}

func (a *app) close() {
	_ = a.logger.Close()
}
