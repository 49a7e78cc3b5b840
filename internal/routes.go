package internal

import (
	"net/http"

	"stagehand/internal/controllers"
	"stagehand/internal/providers"
	"stagehand/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/state", http.HandlerFunc(apiController.GetState))
	routers.Post("/control/app-name", http.HandlerFunc(apiController.UpdateAppName))
	routers.Post("/upload", http.HandlerFunc(apiController.Upload))
	return routers
}
