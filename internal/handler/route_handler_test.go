package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/service"
	"navify-backend/internal/infrastructure/maps"
	repoImpl "navify-backend/internal/repository"
	"navify-backend/internal/usecase"
)

// newRouteTestRouter 外部ネットワークに出ないテスト構成を組む
// ジオコーダーなし（座標入力のみ解決可能）、経路プロバイダはローカルフォールバックのみ
func newRouteTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	areasRepo := repoImpl.NewSeededMemoryTrafficAreasRepository()
	resolver := service.NewLocationResolver()
	chain := service.NewRouteChainService(resolver, maps.NewHaversineFallbackProvider(areasRepo))
	routeUseCase := usecase.NewRouteDirectionsUseCase(chain, resolver, nil)

	routeHandler := NewRouteHandler(routeUseCase)
	geocodeHandler := NewGeocodeHandler(routeUseCase)

	router := gin.New()
	router.GET("/api/routes", routeHandler.GetRoutes)
	router.GET("/api/geocode", geocodeHandler.Geocode)
	return router
}

func TestRouteHandler_GetRoutes(t *testing.T) {
	t.Run("座標入力でフォールバック経路が返る", func(t *testing.T) {
		router := newRouteTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/routes?origin=37.7749,-122.4194&dest=34.0522,-118.2437", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var result model.RouteResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "OK", result.Status)
		assert.Equal(t, "fallback (mock)", result.Provider)
		assert.NotEmpty(t, result.Note)
		require.Len(t, result.Routes, 2)
		assert.Equal(t, model.RouteNameFastest, result.Routes[0].Name)
		assert.Equal(t, model.RouteNameScenic, result.Routes[1].Name)
		assert.InDelta(t, 559.0, result.Routes[0].DistanceKm, 5.0)
	})

	t.Run("originが欠落していると400", func(t *testing.T) {
		router := newRouteTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/routes?dest=34.0522,-118.2437", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("解決できない住所は400と案内メッセージ", func(t *testing.T) {
		router := newRouteTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/routes?origin=Some+Unknown+Place&dest=34.0522,-118.2437", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "address_not_found", resp.Error)
		assert.Equal(t, addressNotFoundMessage, resp.Message)
	})
}

func TestGeocodeHandler_Geocode(t *testing.T) {
	t.Run("座標入力はそのまま解決される", func(t *testing.T) {
		router := newRouteTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/geocode?address=35.0116,135.7681", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Address  string `json:"address"`
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Address)
		assert.Equal(t, 35.0116, resp.Location.Lat)
		assert.Equal(t, 135.7681, resp.Location.Lng)
	})

	t.Run("レスポンスはlocationを入れ子で持つ", func(t *testing.T) {
		router := newRouteTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/geocode?address=37.7749,-122.4194", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "address")
		require.Contains(t, body, "location")
		assert.NotContains(t, body, "lat", "座標はlocation配下にのみ置く")

		var loc model.LatLng
		require.NoError(t, json.Unmarshal(body["location"], &loc))
		assert.Equal(t, 37.7749, loc.Lat)
		assert.Equal(t, -122.4194, loc.Lng)
	})

	t.Run("解決できない住所は404", func(t *testing.T) {
		router := newRouteTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/geocode?address=Nonexistent+Place", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Address not found", resp.Error)
	})

	t.Run("addressが欠落していると400", func(t *testing.T) {
		router := newRouteTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/geocode", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
