package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"navify-backend/internal/database"
	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// SupabaseTrafficAreasRepository Supabase (PostgREST) を使用した渋滞エリアリポジトリ
type SupabaseTrafficAreasRepository struct {
	client *database.SupabaseClient
}

// NewSupabaseTrafficAreasRepository 新しいインスタンスを作成
func NewSupabaseTrafficAreasRepository(client *database.SupabaseClient) repository.TrafficAreasRepository {
	return &SupabaseTrafficAreasRepository{
		client: client,
	}
}

// GetAll 全渋滞エリアを名前順で取得する
func (r *SupabaseTrafficAreasRepository) GetAll(ctx context.Context) ([]model.TrafficArea, error) {
	var areas []model.TrafficArea
	data, count, err := r.client.GetClient().From("traffic_areas").Select("*", "exact", false).Order("name", nil).Execute()
	if err != nil {
		return nil, fmt.Errorf("渋滞エリアデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &areas); err != nil {
		return nil, fmt.Errorf("渋滞エリアデータのJSONアンマーシャル失敗: %w", err)
	}

	return areas, nil
}

// GetByID 指定IDの渋滞エリアを取得する
func (r *SupabaseTrafficAreasRepository) GetByID(ctx context.Context, id string) (*model.TrafficArea, error) {
	var areas []model.TrafficArea
	data, count, err := r.client.GetClient().From("traffic_areas").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("渋滞エリアデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &areas); err != nil {
		return nil, fmt.Errorf("渋滞エリアデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(areas) == 0 {
		return nil, fmt.Errorf("渋滞エリア ID %s: %w", id, model.ErrNotFound)
	}

	return &areas[0], nil
}

// Create 渋滞エリアを新規作成する
func (r *SupabaseTrafficAreasRepository) Create(ctx context.Context, area *model.TrafficArea) error {
	data, err := json.Marshal(area)
	if err != nil {
		return fmt.Errorf("渋滞エリアデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("traffic_areas").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("渋滞エリアデータの作成失敗: %w", err)
	}

	return nil
}

// Update 渋滞エリアを更新する
func (r *SupabaseTrafficAreasRepository) Update(ctx context.Context, area *model.TrafficArea) error {
	data, err := json.Marshal(area)
	if err != nil {
		return fmt.Errorf("渋滞エリアデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("traffic_areas").Update(string(data), "", "").Eq("id", area.ID).Execute()
	if err != nil {
		return fmt.Errorf("渋滞エリアデータの更新失敗: %w", err)
	}

	return nil
}

// Upsert 存在すれば更新、なければ作成する（PostgRESTのupsertで行アトミック）
func (r *SupabaseTrafficAreasRepository) Upsert(ctx context.Context, area *model.TrafficArea) error {
	data, err := json.Marshal(area)
	if err != nil {
		return fmt.Errorf("渋滞エリアデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("traffic_areas").Insert(string(data), true, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("渋滞エリアデータのupsert失敗: %w", err)
	}

	return nil
}

// Delete 指定IDの渋滞エリアを削除する
func (r *SupabaseTrafficAreasRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.client.GetClient().From("traffic_areas").Delete("", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("渋滞エリアデータの削除失敗: %w", err)
	}

	return nil
}
