package repository

import (
	"context"

	"navify-backend/internal/domain/model"
)

// TrafficAreasRepository 渋滞エリアの永続化インターフェース
// 集約サイクルと手動API編集が並行して書き込むため、Upsertは行単位でアトミックであること
type TrafficAreasRepository interface {
	GetAll(ctx context.Context) ([]model.TrafficArea, error)
	GetByID(ctx context.Context, id string) (*model.TrafficArea, error)
	Create(ctx context.Context, area *model.TrafficArea) error
	Update(ctx context.Context, area *model.TrafficArea) error
	Upsert(ctx context.Context, area *model.TrafficArea) error
	Delete(ctx context.Context, id string) error
}
