//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"stagehand/internal"
	"stagehand/internal/controllers"
	"stagehand/internal/document"
	"stagehand/internal/hub"
	"stagehand/internal/providers"
	"stagehand/internal/services"
	"stagehand/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		document.NewZstdCompressor,
		document.NewFileManager,
		document.NewSceneArchive,
		document.NewScheduler,
		hub.NewHub,
		services.NewDocumentService,
		controllers.NewApiController,
		controllers.NewHealthController,
		controllers.NewSocketController,
		internal.InitRoutes,
		internal.NewApp,

		wire.Bind(new(services.PersistenceInterface), new(*document.FileManager)),
		wire.Bind(new(services.BroadcasterInterface), new(*hub.Hub)),
		wire.Bind(new(services.ArchiverInterface), new(*document.SceneArchive)),
	)

	return nil, nil
}
