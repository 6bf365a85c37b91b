package helper

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"navify-backend/internal/domain/model"
)

// earthRadiusKm 地球半径（km）
// フォールバック経路とクライアント側の進捗計算の両方で同じ値を使うこと
const earthRadiusKm = 6371.0

// HaversineDistanceKm 2地点間の大圏距離をkmで計算する（ハーバサイン公式）
func HaversineDistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// LatLngToPoint LatLngをorb.Pointに変換する（orbは[lng, lat]順）
func LatLngToPoint(ll model.LatLng) orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// StraightLineGeometry 2地点を結ぶ直線のGeoJSON LineStringを合成する
// プロバイダがジオメトリを返さなかった場合の補完に使う
func StraightLineGeometry(origin, dest model.LatLng) *geojson.Geometry {
	line := orb.LineString{
		LatLngToPoint(origin),
		LatLngToPoint(dest),
	}
	return geojson.NewGeometry(line)
}

// LineStringGeometry 座標列（[lng, lat]順）からGeoJSON LineStringを構築する
func LineStringGeometry(coords [][]float64) *geojson.Geometry {
	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		line = append(line, orb.Point{c[0], c[1]})
	}
	if len(line) < 2 {
		return nil
	}
	return geojson.NewGeometry(line)
}

// RadiusBound 中心座標と半径（m）から緯度経度の範囲を計算する
// 近傍検索の粗い絞り込みに使う（正確な判定はHaversineDistanceKmで行うこと）
func RadiusBound(lat, lng, radiusMeters float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusMeters / 1000.0 / earthRadiusKm * 180 / math.Pi
	lngDelta := latDelta / math.Cos(lat*math.Pi/180)
	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}
