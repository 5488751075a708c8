package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/inspect"
	"github.com/repolens/repolens/internal/reports"
	"github.com/repolens/repolens/internal/server"
	"github.com/repolens/repolens/pkg/badgerfx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		inspect.Module(),
		reports.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🔍 RepoLens starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 RepoLens shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
