package integration_tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/coinwatch/assethub/db/models"
	"github.com/coinwatch/assethub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type FavoritesSuite struct {
	suite.Suite
	app *echo.Echo
}

var favoritesSvc *service.AssethubService

func (suite *FavoritesSuite) SetupSuite() {
	svc, err := AssethubTestServiceInit()
	require.NoError(suite.T(), err)
	favoritesSvc = svc
	suite.app = InitTestApp(favoritesSvc)
}

func (suite *FavoritesSuite) SetupTest() {
	require.NoError(suite.T(), clearFavorites(favoritesSvc))
}

func (suite *FavoritesSuite) TestAddAndListFavorites() {
	rec := httpJSON(suite.app, http.MethodPost, "/api/favorites", map[string]string{"assetId": "bitcoin"})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	var created models.Favorite
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(suite.T(), "bitcoin", created.AssetID)
	assert.NotZero(suite.T(), created.ID)

	rec = httpJSON(suite.app, http.MethodGet, "/api/favorites", nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var favorites []models.Favorite
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &favorites))
	require.Len(suite.T(), favorites, 1)
	assert.Equal(suite.T(), created.ID, favorites[0].ID)
}

func (suite *FavoritesSuite) TestAddFavoriteIsIdempotent() {
	first := httpJSON(suite.app, http.MethodPost, "/api/favorites", map[string]string{"assetId": "ethereum"})
	second := httpJSON(suite.app, http.MethodPost, "/api/favorites", map[string]string{"assetId": "ethereum"})

	assert.Equal(suite.T(), http.StatusCreated, first.Code)
	assert.Equal(suite.T(), http.StatusCreated, second.Code)

	var a, b models.Favorite
	require.NoError(suite.T(), json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(suite.T(), json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(suite.T(), a.ID, b.ID)

	rec := httpJSON(suite.app, http.MethodGet, "/api/favorites", nil)
	var favorites []models.Favorite
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &favorites))
	assert.Len(suite.T(), favorites, 1)
}

func (suite *FavoritesSuite) TestConcurrentAddsPersistOneRow() {
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httpJSON(suite.app, http.MethodPost, "/api/favorites", map[string]string{"assetId": "bitcoin"})
			assert.Equal(suite.T(), http.StatusCreated, rec.Code)
		}()
	}
	wg.Wait()

	rec := httpJSON(suite.app, http.MethodGet, "/api/favorites", nil)
	var favorites []models.Favorite
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &favorites))
	assert.Len(suite.T(), favorites, 1)
}

func (suite *FavoritesSuite) TestAddFavoriteRequiresAssetID() {
	rec := httpJSON(suite.app, http.MethodPost, "/api/favorites", map[string]string{})
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, rec.Code)

	rec = httpJSON(suite.app, http.MethodPost, "/api/favorites", map[string]string{"assetId": ""})
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, rec.Code)
}

func (suite *FavoritesSuite) TestRemoveFavorite() {
	rec := httpJSON(suite.app, http.MethodPost, "/api/favorites", map[string]string{"assetId": "dogecoin"})
	require.Equal(suite.T(), http.StatusCreated, rec.Code)

	var created models.Favorite
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &created))

	rec = httpJSON(suite.app, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", created.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"message": "Favorite removed successfully"}`, rec.Body.String())

	// the row is gone, a second delete reports not found
	rec = httpJSON(suite.app, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", created.ID), nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.JSONEq(suite.T(), `{"error": "Favorite not found"}`, rec.Body.String())
}

func (suite *FavoritesSuite) TestRemoveFavoriteBadID() {
	rec := httpJSON(suite.app, http.MethodDelete, "/api/favorites/not-a-number", nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func TestFavoritesSuite(t *testing.T) {
	suite.Run(t, new(FavoritesSuite))
}
