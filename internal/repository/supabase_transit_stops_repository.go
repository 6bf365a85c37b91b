package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"navify-backend/internal/database"
	"navify-backend/internal/domain/helper"
	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// SupabaseTransitStopsRepository Supabase (PostgREST) を使用した停留所リポジトリ
type SupabaseTransitStopsRepository struct {
	client *database.SupabaseClient
}

// NewSupabaseTransitStopsRepository 新しいインスタンスを作成
func NewSupabaseTransitStopsRepository(client *database.SupabaseClient) repository.TransitStopsRepository {
	return &SupabaseTransitStopsRepository{
		client: client,
	}
}

// GetAll 全停留所を取得する
func (r *SupabaseTransitStopsRepository) GetAll(ctx context.Context) ([]model.TransitStop, error) {
	var stops []model.TransitStop
	data, count, err := r.client.GetClient().From("transit_stops").Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("停留所データの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &stops); err != nil {
		return nil, fmt.Errorf("停留所データのJSONアンマーシャル失敗: %w", err)
	}

	return stops, nil
}

// FindNearby 指定座標の近傍にある停留所を取得する
// PostgRESTには距離関数を投げられないので、バウンディングボックスで粗く絞ってから
// ハバーサイン距離で正確に判定する
func (r *SupabaseTransitStopsRepository) FindNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.TransitStop, error) {
	minLat, maxLat, minLng, maxLng := helper.RadiusBound(lat, lng, float64(radiusMeters))

	var stops []model.TransitStop
	data, count, err := r.client.GetClient().From("transit_stops").
		Select("*", "exact", false).
		Gte("lat", fmt.Sprintf("%f", minLat)).
		Lte("lat", fmt.Sprintf("%f", maxLat)).
		Gte("lng", fmt.Sprintf("%f", minLng)).
		Lte("lng", fmt.Sprintf("%f", maxLng)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("近傍停留所データの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &stops); err != nil {
		return nil, fmt.Errorf("近傍停留所データのJSONアンマーシャル失敗: %w", err)
	}

	radiusKm := float64(radiusMeters) / 1000.0
	var nearby []model.TransitStop
	for _, stop := range stops {
		if helper.HaversineDistanceKm(lat, lng, stop.Lat, stop.Lng) <= radiusKm {
			nearby = append(nearby, stop)
		}
	}

	return nearby, nil
}
