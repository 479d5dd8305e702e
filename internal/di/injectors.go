//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"alertd/internal"
	"alertd/internal/alerthist"
	"alertd/internal/connection"
	"alertd/internal/controllers"
	"alertd/internal/notify"
	"alertd/internal/providers"
	"alertd/internal/services"
	"alertd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewAlertStoreProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		alerthist.NewZstdCompressor,
		alerthist.NewFileManager,
		alerthist.NewScheduler,
		connection.NewManager,
		services.NewAlertService,
		notify.NewConfigPermissionProvider,
		notify.NewLogCenter,
		notify.NewBridge,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
