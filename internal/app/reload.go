package app

import (
	"context"

	"go.uber.org/zap"

	"apidir/internal/infra/config"
	"apidir/internal/infra/telemetry"
)

// ReloadConfig re-reads the config file with the original command line
// overrides and applies the new base URL. Other settings need a restart.
// Config keeps reporting the values the application started with.
func (a *Application) ReloadConfig(ctx context.Context) error {
	if a.loader == nil || a.settings.ConfigPath == "" {
		return nil
	}
	cfg, err := a.loader.Load(ctx, a.settings.ConfigPath, a.settings.Overrides)
	if err != nil {
		return err
	}
	if err := a.directory.SetBaseURL(cfg.BaseURL); err != nil {
		return err
	}
	if cfg.RequestTimeout != a.settings.Config.RequestTimeout || cfg.LogLevel != a.settings.Config.LogLevel {
		a.logger.Info("config changes other than baseUrl apply on restart",
			telemetry.EventField(telemetry.EventConfigReload),
		)
	}
	return nil
}

// WatchConfig reloads the config file whenever it changes until ctx is
// done. It returns immediately when no config file is in use.
func (a *Application) WatchConfig(ctx context.Context) {
	if a.settings.ConfigPath == "" {
		return
	}
	watcher := config.Watcher{
		Path:   a.settings.ConfigPath,
		Logger: a.logger,
		OnChange: func(ctx context.Context) {
			if err := a.ReloadConfig(ctx); err != nil {
				a.logger.Warn("config reload failed", zap.Error(err))
			}
		},
	}
	go func() {
		if err := watcher.Run(ctx); err != nil {
			a.logger.Warn("config watcher failed", zap.Error(err))
		}
	}()
}
