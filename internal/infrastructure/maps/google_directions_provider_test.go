package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
)

const googleSampleResponse = `{
	"status": "OK",
	"routes": [
		{
			"summary": "US-101 N",
			"legs": [
				{
					"distance": {"text": "12.3 km", "value": 12340},
					"duration": {"text": "15 mins", "value": 900},
					"end_location": {"lat": 37.8000, "lng": -122.4000},
					"steps": [
						{
							"html_instructions": "Head <b>north</b> on Market St",
							"distance": {"text": "1.0 km", "value": 1000},
							"duration": {"text": "2 mins", "value": 120},
							"start_location": {"lat": 37.7749, "lng": -122.4194}
						},
						{
							"html_instructions": "Merge onto US-101 N",
							"distance": {"text": "11.3 km", "value": 11340},
							"duration": {"text": "13 mins", "value": 780},
							"start_location": {"lat": 37.7800, "lng": -122.4100}
						}
					]
				}
			]
		}
	]
}`

func TestGoogleDirectionsProvider_ComputeRoutes(t *testing.T) {
	origin := &model.GeoLocation{Lat: 37.7749, Lng: -122.4194, Address: "San Francisco"}
	dest := &model.GeoLocation{Lat: 37.8000, Lng: -122.4000, Address: "Downtown"}

	t.Run("ステップ座標から折れ線ジオメトリが組み立てられる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "true", r.URL.Query().Get("alternatives"))
			_, _ = w.Write([]byte(googleSampleResponse))
		}))
		defer server.Close()

		p := NewGoogleDirectionsProviderWithBaseURL("test-key", server.URL)
		routes, err := p.ComputeRoutes(context.Background(), origin, dest)
		require.NoError(t, err)
		require.Len(t, routes, 1)

		route := routes[0]
		assert.Equal(t, "US-101 N", route.Summary)
		assert.Equal(t, "Head north on Market St", route.Steps[0].Instruction)

		require.NotNil(t, route.Geometry)
		assert.Equal(t, "LineString", route.Geometry.Type)
		line, ok := route.Geometry.Coordinates.(orb.LineString)
		require.True(t, ok)
		require.Len(t, line, 3, "ステップ始点2つ + レグ終点")
		assert.Equal(t, orb.Point{-122.4194, 37.7749}, line[0])
		assert.Equal(t, orb.Point{-122.4000, 37.8000}, line[2])
	})

	t.Run("ステップがない場合は直線ジオメトリで補完される", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"status": "OK",
				"routes": [{"summary": "Route", "legs": [{
					"distance": {"text": "1 km", "value": 1000},
					"duration": {"text": "2 mins", "value": 120},
					"steps": []
				}]}]
			}`))
		}))
		defer server.Close()

		p := NewGoogleDirectionsProviderWithBaseURL("test-key", server.URL)
		routes, err := p.ComputeRoutes(context.Background(), origin, dest)
		require.NoError(t, err)
		require.Len(t, routes, 1)
		require.NotNil(t, routes[0].Geometry)
		assert.Equal(t, "LineString", routes[0].Geometry.Type)
	})

	t.Run("ステータスOK以外はErrProviderUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
		}))
		defer server.Close()

		p := NewGoogleDirectionsProviderWithBaseURL("test-key", server.URL)
		_, err := p.ComputeRoutes(context.Background(), origin, dest)
		assert.ErrorIs(t, err, model.ErrProviderUnavailable)
	})

	t.Run("APIキーが無ければ利用不可", func(t *testing.T) {
		assert.False(t, NewGoogleDirectionsProvider("").Available())
		assert.True(t, NewGoogleDirectionsProvider("key").Available())
	})
}
