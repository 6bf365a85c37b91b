package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"navify-backend/internal/database"
	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// SupabaseSavedRoutesRepository Supabase (PostgREST) を使用した保存済み経路リポジトリ
type SupabaseSavedRoutesRepository struct {
	client *database.SupabaseClient
}

// NewSupabaseSavedRoutesRepository 新しいインスタンスを作成
func NewSupabaseSavedRoutesRepository(client *database.SupabaseClient) repository.SavedRoutesRepository {
	return &SupabaseSavedRoutesRepository{
		client: client,
	}
}

// Create 保存済み経路を新規作成する（IDが空ならUUIDを採番）
func (r *SupabaseSavedRoutesRepository) Create(ctx context.Context, route *model.SavedRoute) error {
	if route.ID == "" {
		route.ID = uuid.New().String()
	}

	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("保存済み経路のJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("saved_routes").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("保存済み経路の作成失敗: %w", err)
	}

	return nil
}

// GetByID 指定IDの保存済み経路を取得する
func (r *SupabaseSavedRoutesRepository) GetByID(ctx context.Context, id string) (*model.SavedRoute, error) {
	var routes []model.SavedRoute
	data, count, err := r.client.GetClient().From("saved_routes").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("保存済み経路の取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &routes); err != nil {
		return nil, fmt.Errorf("保存済み経路のJSONアンマーシャル失敗: %w", err)
	}

	if len(routes) == 0 {
		return nil, fmt.Errorf("保存済み経路 ID %s: %w", id, model.ErrNotFound)
	}

	return &routes[0], nil
}

// GetByUserID 指定ユーザーの保存済み経路一覧を取得する
func (r *SupabaseSavedRoutesRepository) GetByUserID(ctx context.Context, userID string) ([]model.SavedRoute, error) {
	var routes []model.SavedRoute
	data, count, err := r.client.GetClient().From("saved_routes").Select("*", "exact", false).Eq("user_id", userID).Execute()
	if err != nil {
		return nil, fmt.Errorf("保存済み経路一覧の取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &routes); err != nil {
		return nil, fmt.Errorf("保存済み経路一覧のJSONアンマーシャル失敗: %w", err)
	}

	return routes, nil
}

// Update 保存済み経路を更新する
func (r *SupabaseSavedRoutesRepository) Update(ctx context.Context, route *model.SavedRoute) error {
	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("保存済み経路のJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("saved_routes").Update(string(data), "", "").Eq("id", route.ID).Execute()
	if err != nil {
		return fmt.Errorf("保存済み経路の更新失敗: %w", err)
	}

	return nil
}

// Delete 指定IDの保存済み経路を削除する
func (r *SupabaseSavedRoutesRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.client.GetClient().From("saved_routes").Delete("", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("保存済み経路の削除失敗: %w", err)
	}

	return nil
}
