package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/coinwatch/assethub/lib/responses"
	"github.com/coinwatch/assethub/lib/service"
	"github.com/labstack/echo/v4"
)

// AssetController : proxies cryptocurrency market data
type AssetController struct {
	svc *service.AssethubService
}

func NewAssetController(svc *service.AssethubService) *AssetController {
	return &AssetController{svc: svc}
}

// ListAssets godoc
// @Summary      List assets
// @Description  Returns the top assets by market cap, or the assets matching the ids filter
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        ids  query     string  false  "Comma-separated asset ids"
// @Success      200  {object}  []coingecko.Market
// @Router       /assets [get]
func (controller *AssetController) ListAssets(c echo.Context) error {
	var ids []string
	if raw := c.QueryParam("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	assets := controller.svc.ListAssets(c.Request().Context(), ids)
	return c.JSON(http.StatusOK, assets)
}

// GetAsset godoc
// @Summary      Get one asset
// @Description  Returns the normalized record for a single asset, including its description
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        id   path      string  true  "Asset id"
// @Success      200  {object}  service.Asset
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      502  {object}  responses.ErrorResponse
// @Router       /assets/{id} [get]
func (controller *AssetController) GetAsset(c echo.Context) error {
	asset, err := controller.svc.GetAsset(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssetNotFound):
			return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
		case errors.Is(err, service.ErrUpstreamUnavailable):
			return c.JSON(http.StatusBadGateway, responses.UpstreamUnavailableError)
		}
		return err
	}
	return c.JSON(http.StatusOK, asset)
}

// MarketChart godoc
// @Summary      Get an asset's price history
// @Description  Returns the market chart series for an asset over the given number of days
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        id    path      string  true   "Asset id"
// @Param        days  query     int     false  "Day range"  default(1)
// @Success      200  {object}  coingecko.ChartData
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /assets/{id}/market_chart [get]
func (controller *AssetController) MarketChart(c echo.Context) error {
	days := 1
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.Logger().Errorf("Invalid days param %q for market chart", raw)
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		days = parsed
	}

	chart := controller.svc.GetChart(c.Request().Context(), c.Param("id"), days)
	return c.JSON(http.StatusOK, chart)
}
