package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coinwatch/assethub/lib/responses"
	"github.com/coinwatch/assethub/lib/service"
	"github.com/labstack/echo/v4"
)

// FavoriteController : CRUD over the persisted favorites list
type FavoriteController struct {
	svc *service.AssethubService
}

func NewFavoriteController(svc *service.AssethubService) *FavoriteController {
	return &FavoriteController{svc: svc}
}

type AddFavoriteRequestBody struct {
	AssetID string `json:"assetId" validate:"required"`
}

// ListFavorites godoc
// @Summary      List favorites
// @Description  Returns all favorited assets
// @Accept       json
// @Produce      json
// @Tags         Favorite
// @Success      200  {object}  []models.Favorite
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /favorites [get]
func (controller *FavoriteController) ListFavorites(c echo.Context) error {
	favorites, err := controller.svc.Favorites(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list favorites: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, favorites)
}

// AddFavorite godoc
// @Summary      Add a favorite
// @Description  Bookmarks an asset id. Adding the same id twice returns the existing row.
// @Accept       json
// @Produce      json
// @Tags         Favorite
// @Param        favorite  body      AddFavoriteRequestBody  true  "Asset to favorite"
// @Success      201  {object}  models.Favorite
// @Failure      422  {object}  responses.ErrorResponse
// @Router       /favorites [post]
func (controller *FavoriteController) AddFavorite(c echo.Context) error {
	var body AddFavoriteRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load favorite request body: %v", err)
		return c.JSON(http.StatusUnprocessableEntity, responses.FavoriteInvalidError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid favorite request body: %v", err)
		return c.JSON(http.StatusUnprocessableEntity, responses.FavoriteInvalidError)
	}

	favorite, err := controller.svc.AddFavorite(c.Request().Context(), body.AssetID)
	if err != nil {
		c.Logger().Errorf("Failed to add favorite %s: %v", body.AssetID, err)
		return c.JSON(http.StatusUnprocessableEntity, responses.ErrorResponse{Error: "Unable to add favorite"})
	}
	return c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite godoc
// @Summary      Remove a favorite
// @Description  Deletes a favorite by its id
// @Accept       json
// @Produce      json
// @Tags         Favorite
// @Param        id   path      int  true  "Favorite id"
// @Success      200  {object}  responses.MessageResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /favorites/{id} [delete]
func (controller *FavoriteController) RemoveFavorite(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.FavoriteNotFoundError)
	}

	err = controller.svc.RemoveFavorite(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			return c.JSON(http.StatusNotFound, responses.FavoriteNotFoundError)
		}
		c.Logger().Errorf("Failed to remove favorite %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, responses.FavoriteRemovedResponse)
}
