package repository

import (
	"context"

	"navify-backend/internal/domain/model"
)

// PlacesProvider 地名・スポット検索バックエンドのコントラクト
type PlacesProvider interface {
	Name() string
	Available() bool
	// Search 検索語にマッチする場所のリストを返す。見つからない場合は空リスト
	Search(ctx context.Context, query, country string, limit int) ([]model.Place, error)
}

// TransitStationProvider 近傍の交通機関駅を外部APIから取得するコントラクト
type TransitStationProvider interface {
	Available() bool
	// NearbyStations 指定座標の近傍駅から到着予測リストを構築する。見つからない場合は空リスト
	NearbyStations(ctx context.Context, lat, lng float64) ([]model.TransitArrival, error)
}
