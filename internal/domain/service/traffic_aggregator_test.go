package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
	repoImpl "navify-backend/internal/repository"
)

// failingAreasRepository 全操作が失敗するリポジトリ（永続化エラーの伝播確認用）
type failingAreasRepository struct{}

func (r *failingAreasRepository) GetAll(ctx context.Context) ([]model.TrafficArea, error) {
	return nil, errors.New("store down")
}
func (r *failingAreasRepository) GetByID(ctx context.Context, id string) (*model.TrafficArea, error) {
	return nil, errors.New("store down")
}
func (r *failingAreasRepository) Create(ctx context.Context, area *model.TrafficArea) error {
	return errors.New("store down")
}
func (r *failingAreasRepository) Update(ctx context.Context, area *model.TrafficArea) error {
	return errors.New("store down")
}
func (r *failingAreasRepository) Upsert(ctx context.Context, area *model.TrafficArea) error {
	return errors.New("store down")
}
func (r *failingAreasRepository) Delete(ctx context.Context, id string) error {
	return errors.New("store down")
}

func TestTrafficAggregator_RunCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("同一セルの2pingが1エリアに集約される", func(t *testing.T) {
		now := int64(10 * 60 * 1000)
		ingestor := NewPingIngestorWithClock(func() int64 { return now })
		areasRepo := repoImpl.NewMemoryTrafficAreasRepository()
		aggregator := NewTrafficAggregator(ingestor, areasRepo)

		speed := 0.0
		require.NoError(t, ingestor.Ingest(&model.PingRequest{
			Lat: float64Ptr(37.7750), Lng: float64Ptr(-122.4190), Speed: &speed,
		}))
		require.NoError(t, ingestor.Ingest(&model.PingRequest{
			Lat: float64Ptr(37.7751), Lng: float64Ptr(-122.4191), Speed: &speed,
		}))

		updates := aggregator.RunCycle(ctx)
		require.Len(t, updates, 1)

		area := updates[0]
		assert.Equal(t, "cell_37.775_-122.419", area.ID)
		assert.Equal(t, "Cell 37.775,-122.419", area.Name)
		assert.Equal(t, 95, area.Congestion, "速度0km/hは停滞")
		require.NotNil(t, area.Lat)
		require.NotNil(t, area.Lng)
		assert.InDelta(t, 37.775, *area.Lat, 1e-9)
		assert.InDelta(t, -122.419, *area.Lng, 1e-9)

		// 永続化されていること
		stored, err := areasRepo.GetByID(ctx, area.ID)
		require.NoError(t, err)
		assert.Equal(t, 95, stored.Congestion)
	})

	t.Run("pingがない場合は何もしない", func(t *testing.T) {
		ingestor := NewPingIngestor()
		areasRepo := repoImpl.NewMemoryTrafficAreasRepository()
		aggregator := NewTrafficAggregator(ingestor, areasRepo)

		updates := aggregator.RunCycle(ctx)
		assert.Empty(t, updates)

		areas, err := areasRepo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, areas)
	})

	t.Run("同じバッファで再実行しても結果が変わらない", func(t *testing.T) {
		now := int64(10 * 60 * 1000)
		ingestor := NewPingIngestorWithClock(func() int64 { return now })
		areasRepo := repoImpl.NewMemoryTrafficAreasRepository()
		aggregator := NewTrafficAggregator(ingestor, areasRepo)

		speed := 45.0
		require.NoError(t, ingestor.Ingest(&model.PingRequest{
			Lat: float64Ptr(35.0100), Lng: float64Ptr(135.7000), Speed: &speed,
		}))

		first := aggregator.RunCycle(ctx)
		second := aggregator.RunCycle(ctx)
		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, first[0].Congestion, second[0].Congestion)
	})

	t.Run("永続化エラー時は空リストを返してスケジューラを落とさない", func(t *testing.T) {
		ingestor := NewPingIngestor()
		aggregator := NewTrafficAggregator(ingestor, &failingAreasRepository{})

		require.NoError(t, ingestor.Ingest(&model.PingRequest{
			Lat: float64Ptr(35.0), Lng: float64Ptr(135.0),
		}))

		updates := aggregator.RunCycle(ctx)
		assert.Empty(t, updates)
	})

	t.Run("保持ウィンドウ外のpingは集約に含まれない", func(t *testing.T) {
		now := int64(10 * 60 * 1000)
		ingestor := NewPingIngestorWithClock(func() int64 { return now })
		areasRepo := repoImpl.NewMemoryTrafficAreasRepository()
		aggregator := NewTrafficAggregator(ingestor, areasRepo)

		require.NoError(t, ingestor.Ingest(&model.PingRequest{
			Lat: float64Ptr(35.0), Lng: float64Ptr(135.0),
			Ts: int64Ptr(now - model.PingRetentionMillis - 1000),
		}))

		updates := aggregator.RunCycle(ctx)
		assert.Empty(t, updates)
	})
}
