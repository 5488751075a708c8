package inspect

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"inspect",
		logger.WithNamedLogger("inspect"),
		fx.Provide(NewService),
	)
}
