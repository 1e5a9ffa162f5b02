package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var AssetNotFoundError = ErrorResponse{
	Error: "Asset not found",
}

var UpstreamUnavailableError = ErrorResponse{
	Error: "Market data is currently unavailable",
}

var FavoriteNotFoundError = ErrorResponse{
	Error: "Favorite not found",
}

var FavoriteInvalidError = ErrorResponse{
	Error: "assetId is required and must be a string",
}

var BadArgumentsError = ErrorResponse{
	Error: "Bad arguments",
}

var GeneralServerError = ErrorResponse{
	Error: "Something went wrong. Please try again later",
}

var FavoriteRemovedResponse = MessageResponse{
	Message: "Favorite removed successfully",
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}
