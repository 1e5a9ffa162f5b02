package transport

import (
	"github.com/coinwatch/assethub/controllers"
	"github.com/coinwatch/assethub/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.AssethubService, e *echo.Echo, logMw echo.MiddlewareFunc) {
	assetCtrl := controllers.NewAssetController(svc)
	favoriteCtrl := controllers.NewFavoriteController(svc)

	api := e.Group("/api", logMw)
	api.GET("/assets", assetCtrl.ListAssets)
	api.GET("/assets/:id", assetCtrl.GetAsset)
	api.GET("/assets/:id/market_chart", assetCtrl.MarketChart)

	api.GET("/favorites", favoriteCtrl.ListFavorites)
	api.POST("/favorites", favoriteCtrl.AddFavorite)
	api.DELETE("/favorites/:id", favoriteCtrl.RemoveFavorite)

	e.GET("/v2/health", controllers.NewHealthController(svc).Check)
}
