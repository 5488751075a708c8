package reports

import (
	"github.com/go-core-fx/logger"
	"github.com/repolens/repolens/internal/inspect"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"reports",
		logger.WithNamedLogger("reports"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(func(svc *inspect.Service) Inspector { return svc }, fx.Private),
		fx.Provide(NewService),
	)
}
