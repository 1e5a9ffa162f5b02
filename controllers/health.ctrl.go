package controllers

import (
	"net/http"

	"github.com/coinwatch/assethub/lib/service"
	"github.com/labstack/echo/v4"
)

type HealthController struct {
	svc *service.AssethubService
}

func NewHealthController(svc *service.AssethubService) *HealthController {
	return &HealthController{svc: svc}
}

type HealthResponse struct {
	Result string `json:"result"`
}

// Health godoc
// @Summary      Check system health
// @Description  Check system health
// @Accept       json
// @Produce      json
// @Tags         Health
// @Success      200  {object}  HealthResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/health [get]
func (controller *HealthController) Check(c echo.Context) error {
	if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &HealthResponse{
		Result: "OK",
	})
}
