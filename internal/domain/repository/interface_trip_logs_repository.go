package repository

import (
	"context"

	"navify-backend/internal/domain/model"
)

// TripLogsRepository トリップ記録の永続化インターフェース
type TripLogsRepository interface {
	Create(ctx context.Context, trip *model.TripLog) (*model.TripLog, error)
	GetByUserID(ctx context.Context, userID string) ([]model.TripLog, error)
}
