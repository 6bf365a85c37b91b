package maps

import (
	"fmt"
	"math"
	"regexp"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"navify-backend/internal/domain/helper"
	"navify-backend/internal/domain/model"
)

// htmlTagPattern Google Directionsのhtml_instructionsからタグを除去するためのパターン
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// FormatDistanceKm 距離（km）を表示用テキストに変換する（例: "12.3 km"）
func FormatDistanceKm(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// FormatStepDistanceMeters ステップ距離（m）を表示用テキストに変換する（例: "0.25 km"）
func FormatStepDistanceMeters(meters float64) string {
	return fmt.Sprintf("%.2f km", meters/1000)
}

// FormatDurationMin 所要時間（分）を表示用テキストに変換する（例: "25 min"）
func FormatDurationMin(min int) string {
	return fmt.Sprintf("%d min", min)
}

// RoundSecondsToMinutes 秒を分へ丸める
func RoundSecondsToMinutes(seconds float64) int {
	return int(math.Round(seconds / 60))
}

// RouteName 経路インデックスから表示名を決める（先頭が最速ルート）
func RouteName(idx int) string {
	if idx == 0 {
		return model.RouteNameFastest
	}
	return fmt.Sprintf("Route Option %d", idx+1)
}

// StripHTMLTags 案内文からHTMLタグを除去する
func StripHTMLTags(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// EnsureGeometry プロバイダがジオメトリを返さなかった場合、直線のLineStringを合成する
func EnsureGeometry(geometry *geojson.Geometry, origin, dest *model.GeoLocation) *geojson.Geometry {
	if geometry != nil {
		return geometry
	}
	return helper.StraightLineGeometry(origin.ToLatLng(), dest.ToLatLng())
}

// NewRouteID 経路の一時IDを生成する
func NewRouteID() string {
	return uuid.New().String()
}
