package repository

import (
	"context"

	"navify-backend/internal/domain/model"
)

// RouteProvider 経路検索バックエンド1つ分の共通コントラクト
// チェーンランナーが優先順に試行し、最初に使える経路を返したプロバイダが勝つ
type RouteProvider interface {
	// Name プロバイダ識別子（"osrm", "geoapify", "google", "fallback"）
	Name() string

	// Available 前提条件（APIキーなど）が満たされているか
	Available() bool

	// ComputeRoutes 正規化済みの経路リストを返す
	// 失敗（タイムアウト、非2xx、不正なペイロード）はエラーとして返し、チェーンは次へ進む
	ComputeRoutes(ctx context.Context, origin, dest *model.GeoLocation) ([]model.Route, error)
}

// Geocoder ジオコーディングバックエンド1つ分の共通コントラクト
type Geocoder interface {
	// Name バックエンド識別子（"geoapify", "google", "nominatim"）
	Name() string

	// Available 前提条件（APIキーなど）が満たされているか
	Available() bool

	// Geocode 住所文字列を座標に解決する。見つからない場合は(nil, nil)
	// countryは2文字コードのヒント（対応しないバックエンドは無視する）
	Geocode(ctx context.Context, address, country string) (*model.GeoLocation, error)
}
