package repository

import (
	"context"

	"navify-backend/internal/domain/model"
)

// SavedRoutesRepository 保存済み経路の永続化インターフェース
type SavedRoutesRepository interface {
	Create(ctx context.Context, route *model.SavedRoute) error
	GetByID(ctx context.Context, id string) (*model.SavedRoute, error)
	GetByUserID(ctx context.Context, userID string) ([]model.SavedRoute, error)
	Update(ctx context.Context, route *model.SavedRoute) error
	Delete(ctx context.Context, id string) error
}
