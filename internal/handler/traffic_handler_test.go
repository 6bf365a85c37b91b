package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/service"
	repoImpl "navify-backend/internal/repository"
	"navify-backend/internal/usecase"
)

func newTrafficTestRouter() (*gin.Engine, *repoImpl.MemoryTrafficAreasRepository) {
	gin.SetMode(gin.TestMode)

	areasRepo := repoImpl.NewSeededMemoryTrafficAreasRepository()
	trafficUseCase := usecase.NewTrafficUseCase(service.NewPingIngestor(), areasRepo)
	h := NewTrafficHandler(trafficUseCase)

	router := gin.New()
	router.GET("/api/traffic", h.GetTraffic)
	router.POST("/api/traffic/ping", h.PostPing)
	router.PUT("/api/traffic/bulk", h.BulkUpdate)
	router.GET("/api/traffic/areas/:id", h.GetArea)
	router.POST("/api/traffic/areas", h.CreateArea)
	router.PUT("/api/traffic/areas/:id", h.UpdateArea)
	router.DELETE("/api/traffic/areas/:id", h.DeleteArea)
	return router, areasRepo
}

func TestTrafficHandler_GetTraffic(t *testing.T) {
	router, _ := newTrafficTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/traffic", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var snapshot model.TrafficSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Len(t, snapshot.Areas, 3)
	assert.Positive(t, snapshot.Timestamp)
}

func TestTrafficHandler_PostPing(t *testing.T) {
	t.Run("正常なpingは200とバッファ長を返す", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		body := `{"lat": 37.7749, "lng": -122.4194, "speed": 25.5}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/traffic/ping", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			OK       bool `json:"ok"`
			Buffered int  `json:"buffered"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, 1, resp.Buffered)
	})

	t.Run("latが欠落していると400", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/traffic/ping", strings.NewReader(`{"lng": -122.4194}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("不正なJSONは400", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/traffic/ping", strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTrafficHandler_Areas(t *testing.T) {
	t.Run("既存エリアの取得", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/traffic/areas/area_city_center", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var area model.TrafficArea
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &area))
		assert.Equal(t, "City Center", area.Name)
	})

	t.Run("存在しないエリアは404", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/traffic/areas/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("エリアの作成は201", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		body := `{"id": "a_new", "name": "New Area", "congestion": 20}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/traffic/areas", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("congestionが範囲外なら400", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		body := `{"id": "a_bad", "name": "Bad", "congestion": 150}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/traffic/areas", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("エリアの更新と削除", func(t *testing.T) {
		router, areasRepo := newTrafficTestRouter()

		body := `{"name": "City Center", "congestion": 70}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/traffic/areas/area_city_center", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		got, err := areasRepo.GetByID(req.Context(), "area_city_center")
		require.NoError(t, err)
		assert.Equal(t, 70, got.Congestion)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodDelete, "/api/traffic/areas/area_city_center", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTrafficHandler_BulkUpdate(t *testing.T) {
	t.Run("複数エリアの一括更新", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		body := `{"areas": [
			{"id": "area_city_center", "name": "City Center", "congestion": 90},
			{"id": "area_airport_road", "name": "Airport Road", "congestion": 10}
		]}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/traffic/bulk", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			OK    bool                `json:"ok"`
			Areas []model.TrafficArea `json:"areas"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Len(t, resp.Areas, 3)
	})

	t.Run("空のareasは400", func(t *testing.T) {
		router, _ := newTrafficTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/traffic/bulk", strings.NewReader(`{"areas": []}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
