package usecase

import (
	"context"
	"fmt"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
	"navify-backend/internal/domain/service"
)

// TrafficUseCase 渋滞データの読み取り・ping受信・エリアCRUDのユースケース
type TrafficUseCase interface {
	// GetSnapshot 現在の全渋滞エリアをスナップショットとして返す
	GetSnapshot(ctx context.Context) (*model.TrafficSnapshot, error)

	// IngestPing GPS pingをバッファへ追加し、現在のバッファ長を返す
	IngestPing(req *model.PingRequest) (int, error)

	GetArea(ctx context.Context, id string) (*model.TrafficArea, error)
	CreateArea(ctx context.Context, area *model.TrafficArea) error
	UpdateArea(ctx context.Context, area *model.TrafficArea) error
	DeleteArea(ctx context.Context, id string) error

	// BulkUpdate 複数エリアの渋滞度を一括で更新する（管理・シミュレーション用）
	BulkUpdate(ctx context.Context, areas []model.TrafficArea) ([]model.TrafficArea, error)
}

// trafficUseCaseImpl TrafficUseCaseの実装
type trafficUseCaseImpl struct {
	ingestor  *service.PingIngestor
	areasRepo repository.TrafficAreasRepository
}

// NewTrafficUseCase 新しいTrafficUseCaseインスタンスを作成
func NewTrafficUseCase(ingestor *service.PingIngestor, areasRepo repository.TrafficAreasRepository) TrafficUseCase {
	return &trafficUseCaseImpl{
		ingestor:  ingestor,
		areasRepo: areasRepo,
	}
}

// GetSnapshot 現在の全渋滞エリアをスナップショットとして返す
func (u *trafficUseCaseImpl) GetSnapshot(ctx context.Context) (*model.TrafficSnapshot, error) {
	areas, err := u.areasRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("渋滞エリア一覧の取得に失敗: %w", err)
	}
	return model.NewTrafficSnapshot(areas), nil
}

// IngestPing GPS pingをバッファへ追加する
func (u *trafficUseCaseImpl) IngestPing(req *model.PingRequest) (int, error) {
	if err := u.ingestor.Ingest(req); err != nil {
		return 0, err
	}
	return u.ingestor.Len(), nil
}

// GetArea 指定IDの渋滞エリアを取得する
func (u *trafficUseCaseImpl) GetArea(ctx context.Context, id string) (*model.TrafficArea, error) {
	return u.areasRepo.GetByID(ctx, id)
}

// CreateArea 渋滞エリアを新規作成する
func (u *trafficUseCaseImpl) CreateArea(ctx context.Context, area *model.TrafficArea) error {
	if area.ID == "" || area.Name == "" {
		return fmt.Errorf("%w: idとnameは必須です", model.ErrInvalidInput)
	}
	if area.Congestion < 0 || area.Congestion > 100 {
		return fmt.Errorf("%w: congestionは0〜100で指定してください", model.ErrInvalidInput)
	}
	return u.areasRepo.Create(ctx, area)
}

// UpdateArea 渋滞エリアを更新する
func (u *trafficUseCaseImpl) UpdateArea(ctx context.Context, area *model.TrafficArea) error {
	if area.Congestion < 0 || area.Congestion > 100 {
		return fmt.Errorf("%w: congestionは0〜100で指定してください", model.ErrInvalidInput)
	}
	return u.areasRepo.Update(ctx, area)
}

// DeleteArea 指定IDの渋滞エリアを削除する
func (u *trafficUseCaseImpl) DeleteArea(ctx context.Context, id string) error {
	return u.areasRepo.Delete(ctx, id)
}

// BulkUpdate 複数エリアの渋滞度を一括で更新し、更新後の全エリアを返す
func (u *trafficUseCaseImpl) BulkUpdate(ctx context.Context, areas []model.TrafficArea) ([]model.TrafficArea, error) {
	for i := range areas {
		if areas[i].ID == "" {
			return nil, fmt.Errorf("%w: 各エリアにidが必要です", model.ErrInvalidInput)
		}
		if areas[i].Congestion < 0 || areas[i].Congestion > 100 {
			return nil, fmt.Errorf("%w: congestionは0〜100で指定してください (id: %s)", model.ErrInvalidInput, areas[i].ID)
		}
	}

	for i := range areas {
		if err := u.areasRepo.Upsert(ctx, &areas[i]); err != nil {
			return nil, fmt.Errorf("エリア %s の一括更新に失敗: %w", areas[i].ID, err)
		}
	}

	return u.areasRepo.GetAll(ctx)
}
