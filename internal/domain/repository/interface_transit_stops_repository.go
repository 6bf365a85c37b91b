package repository

import (
	"context"

	"navify-backend/internal/domain/model"
)

// TransitStopsRepository 停留所の永続化インターフェース
type TransitStopsRepository interface {
	// FindNearby 指定座標の近傍にある停留所を取得する
	FindNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.TransitStop, error)
	GetAll(ctx context.Context) ([]model.TransitStop, error)
}
