package cli

import (
	"fmt"

	"github.com/alcove-sh/alcove/internal/config"
	"github.com/alcove-sh/alcove/internal/logger"
	"github.com/alcove-sh/alcove/pkg/alias"
	"github.com/alcove-sh/alcove/pkg/session"
)

// appContext bundles everything a subcommand needs.
type appContext struct {
	cfg      *config.Config
	log      *logger.Logger
	aliases  *alias.Store
	sessions *session.Repository
}

func (a *appContext) close() {
	if a.sessions != nil {
		a.sessions.Close()
	}
	if a.log != nil {
		_ = a.log.Close()
	}
}

// openApp loads config, sets up logging and opens both stores.
func openApp() (*appContext, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	lg, err := logger.New(logger.Config{
		Level:    cfg.Logging.Level,
		File:     cfg.Logging.File,
		Console:  cfg.Logging.Console,
		Pretty:   cfg.Logging.Pretty,
		MaxSize:  cfg.Logging.MaxSize,
		MaxAge:   cfg.Logging.MaxAge,
		Compress: cfg.Logging.Compress,
	})
	if err != nil {
		return nil, err
	}

	var sessionOpts []session.Option
	if cfg.Sessions.Cache {
		sessionOpts = append(sessionOpts, session.WithCache())
	}
	sessions, err := session.New(cfg.Sessions.Dir, sessionOpts...)
	if err != nil {
		_ = lg.Close()
		return nil, err
	}

	return &appContext{
		cfg:      cfg,
		log:      lg,
		aliases:  alias.New(cfg.Aliases.Path),
		sessions: sessions,
	}, nil
}
