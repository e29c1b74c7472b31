package cli

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/dailytasks/internal/app"
	"github.com/idilsaglam/dailytasks/internal/config"
	"github.com/idilsaglam/dailytasks/internal/logging"
	"github.com/idilsaglam/dailytasks/internal/store"
	"github.com/idilsaglam/dailytasks/internal/store/sqlitestore"
)

// session is what every subcommand works with: one store, one controller.
type session struct {
	log   zerolog.Logger
	store store.Store
	ctrl  *app.Controller
}

// provideLogger writes to cfg.LogFile when set, else to sink (nil discards).
func provideLogger(cfg config.Config, sink io.Writer) (zerolog.Logger, func(), error) {
	return logging.Open(cfg.LogLevel, cfg.LogFile, sink)
}

func provideStore(cfg config.Config, log zerolog.Logger) (store.Store, func(), error) {
	s, err := sqlitestore.Open(cfg.DBPath, logging.Component(log, "store"))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := s.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}
	return s, cleanup, nil
}

func provideController(s store.Store, log zerolog.Logger) *app.Controller {
	return app.New(s, logging.Component(log, "app"))
}
