package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
)

func TestHaversineDistanceKm(t *testing.T) {
	t.Run("サンフランシスコ-ロサンゼルス間は約559km", func(t *testing.T) {
		dist := HaversineDistanceKm(37.7749, -122.4194, 34.0522, -118.2437)
		assert.InDelta(t, 559.0, dist, 5.0)
	})

	t.Run("同一地点は0km", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistanceKm(35.0, 135.0, 35.0, 135.0))
	})

	t.Run("引数の順序を入れ替えても同じ距離", func(t *testing.T) {
		a := HaversineDistanceKm(35.0116, 135.7681, 34.7025, 135.4959)
		b := HaversineDistanceKm(34.7025, 135.4959, 35.0116, 135.7681)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestStraightLineGeometry(t *testing.T) {
	geom := StraightLineGeometry(
		model.LatLng{Lat: 35.0, Lng: 135.0},
		model.LatLng{Lat: 36.0, Lng: 136.0},
	)
	require.NotNil(t, geom)
	assert.Equal(t, "LineString", geom.Type)
}

func TestLineStringGeometry(t *testing.T) {
	t.Run("座標列からLineStringを構築", func(t *testing.T) {
		geom := LineStringGeometry([][]float64{{135.0, 35.0}, {136.0, 36.0}, {137.0, 37.0}})
		require.NotNil(t, geom)
		assert.Equal(t, "LineString", geom.Type)
	})

	t.Run("点が足りない場合はnil", func(t *testing.T) {
		assert.Nil(t, LineStringGeometry([][]float64{{135.0, 35.0}}))
		assert.Nil(t, LineStringGeometry(nil))
	})

	t.Run("不正な座標は読み飛ばされる", func(t *testing.T) {
		geom := LineStringGeometry([][]float64{{135.0, 35.0}, {1.0}, {136.0, 36.0}})
		require.NotNil(t, geom)
	})
}

func TestRadiusBound(t *testing.T) {
	minLat, maxLat, minLng, maxLng := RadiusBound(35.0, 135.0, 1000)

	assert.Less(t, minLat, 35.0)
	assert.Greater(t, maxLat, 35.0)
	assert.Less(t, minLng, 135.0)
	assert.Greater(t, maxLng, 135.0)

	// 半径1kmなら緯度差は約0.009度
	assert.InDelta(t, 0.009, maxLat-35.0, 0.001)
}
