//go:build wireinject
// +build wireinject

package cli

import (
	"io"

	"github.com/google/wire"

	"github.com/idilsaglam/dailytasks/internal/config"
)

// initializeSession wires logger -> store -> controller. The returned cleanup
// closes the store and then the log file.
func initializeSession(cfg config.Config, sink io.Writer) (*session, func(), error) {
	wire.Build(
		provideLogger,
		provideStore,
		provideController,
		wire.Struct(new(session), "*"),
	)
	return nil, nil, nil
}
