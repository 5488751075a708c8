package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/repolens/repolens/internal/inspect"
	"github.com/repolens/repolens/pkg/badgerfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) inspect.Config {
			return inspect.Config{
				DefaultLimit:  cfg.Inspect.DefaultLimit,
				SearchParents: cfg.Inspect.SearchParents,
			}
		}),
	)
}
