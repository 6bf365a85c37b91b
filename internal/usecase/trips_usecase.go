package usecase

import (
	"context"
	"fmt"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// TripsUseCase 完了トリップ記録の保存・取得ユースケース
type TripsUseCase interface {
	// RecordTrip トリップ記録を保存する。userIDが空なら匿名として扱う
	RecordTrip(ctx context.Context, userID string, trip *model.TripLog) (*model.TripLog, error)

	// GetTrips 指定ユーザーのトリップ記録一覧を取得する
	GetTrips(ctx context.Context, userID string) ([]model.TripLog, error)
}

// tripsUseCaseImpl TripsUseCaseの実装
type tripsUseCaseImpl struct {
	tripsRepo repository.TripLogsRepository
}

// NewTripsUseCase 新しいTripsUseCaseインスタンスを作成
// tripsRepoがnilの場合、操作はErrPersistenceErrorを返す
func NewTripsUseCase(tripsRepo repository.TripLogsRepository) TripsUseCase {
	return &tripsUseCaseImpl{tripsRepo: tripsRepo}
}

// RecordTrip トリップ記録を保存する
func (u *tripsUseCaseImpl) RecordTrip(ctx context.Context, userID string, trip *model.TripLog) (*model.TripLog, error) {
	if u.tripsRepo == nil {
		return nil, fmt.Errorf("%w: トリップ記録ストアが設定されていません", model.ErrPersistenceError)
	}
	if trip == nil {
		return nil, fmt.Errorf("%w: リクエストボディが必要です", model.ErrInvalidInput)
	}

	if userID != "" {
		trip.UserID = &userID
	} else {
		trip.UserID = nil
		trip.Anonymized = true
	}

	// 終了・開始時刻があれば所要時間を補完する
	if trip.DurationSec == nil && trip.StartTs != nil && trip.EndTs != nil && *trip.EndTs > *trip.StartTs {
		dur := int((*trip.EndTs - *trip.StartTs) / 1000)
		trip.DurationSec = &dur
	}

	return u.tripsRepo.Create(ctx, trip)
}

// GetTrips 指定ユーザーのトリップ記録一覧を取得する
func (u *tripsUseCaseImpl) GetTrips(ctx context.Context, userID string) ([]model.TripLog, error) {
	if u.tripsRepo == nil {
		return nil, fmt.Errorf("%w: トリップ記録ストアが設定されていません", model.ErrPersistenceError)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: X-User-IDヘッダーが必要です", model.ErrInvalidInput)
	}
	trips, err := u.tripsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []model.TripLog{}
	}
	return trips, nil
}
