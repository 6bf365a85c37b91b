package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/service"
	repoImpl "navify-backend/internal/repository"
)

// captureBroadcaster 配信されたスナップショットを記録する差し替え用ブロードキャスター
type captureBroadcaster struct {
	snapshots []*model.TrafficSnapshot
}

func (b *captureBroadcaster) Broadcast(snapshot *model.TrafficSnapshot) {
	b.snapshots = append(b.snapshots, snapshot)
}

func newTestScheduler(randFloat func() float64) (*BroadcastScheduler, *captureBroadcaster, *repoImpl.MemoryTrafficAreasRepository) {
	areasRepo := repoImpl.NewSeededMemoryTrafficAreasRepository()
	ingestor := service.NewPingIngestor()
	aggregator := service.NewTrafficAggregator(ingestor, areasRepo)
	broadcaster := &captureBroadcaster{}

	s := NewBroadcastScheduler(aggregator, areasRepo, broadcaster, time.Second)
	if randFloat != nil {
		s.randFloat = randFloat
	}
	return s, broadcaster, areasRepo
}

func TestBroadcastScheduler_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("1サイクルでスナップショットが配信される", func(t *testing.T) {
		s, broadcaster, _ := newTestScheduler(func() float64 { return 0.5 }) // delta=0
		s.RunOnce(ctx)

		require.Len(t, broadcaster.snapshots, 1)
		snapshot := broadcaster.snapshots[0]
		assert.Len(t, snapshot.Areas, 3, "シード済みの3エリアが含まれる")
		assert.Positive(t, snapshot.Timestamp)
	})

	t.Run("乱数0.5なら渋滞度は変化しない", func(t *testing.T) {
		s, broadcaster, _ := newTestScheduler(func() float64 { return 0.5 })
		s.RunOnce(ctx)

		byName := map[string]int{}
		for _, a := range broadcaster.snapshots[0].Areas {
			byName[a.Name] = a.Congestion
		}
		assert.Equal(t, 65, byName["City Center"])
		assert.Equal(t, 40, byName["Airport Road"])
		assert.Equal(t, 80, byName["Industrial Area"])
	})

	t.Run("ランダムウォークは上限95を超えない", func(t *testing.T) {
		s, broadcaster, _ := newTestScheduler(func() float64 { return 1.0 }) // delta=+10
		for i := 0; i < 10; i++ {
			s.RunOnce(ctx)
		}

		last := broadcaster.snapshots[len(broadcaster.snapshots)-1]
		for _, a := range last.Areas {
			assert.LessOrEqual(t, a.Congestion, 95, "area %s", a.Name)
		}
	})

	t.Run("ランダムウォークは下限5を割らない", func(t *testing.T) {
		s, broadcaster, _ := newTestScheduler(func() float64 { return 0.0 }) // delta=-10
		for i := 0; i < 10; i++ {
			s.RunOnce(ctx)
		}

		last := broadcaster.snapshots[len(broadcaster.snapshots)-1]
		for _, a := range last.Areas {
			assert.GreaterOrEqual(t, a.Congestion, 5, "area %s", a.Name)
		}
	})

	t.Run("集約で生まれたセルも同じサイクルで揺らいでから配信される", func(t *testing.T) {
		areasRepo := repoImpl.NewMemoryTrafficAreasRepository()
		ingestor := service.NewPingIngestor()
		aggregator := service.NewTrafficAggregator(ingestor, areasRepo)
		broadcaster := &captureBroadcaster{}

		s := NewBroadcastScheduler(aggregator, areasRepo, broadcaster, time.Second)
		s.randFloat = func() float64 { return 1.0 } // delta=+10

		lat, lng, speed := 37.7749, -122.4194, 60.0 // 速度60km/h → 集約で渋滞度10
		require.NoError(t, ingestor.Ingest(&model.PingRequest{Lat: &lat, Lng: &lng, Speed: &speed}))

		s.RunOnce(ctx)

		require.Len(t, broadcaster.snapshots, 1)
		require.Len(t, broadcaster.snapshots[0].Areas, 1)
		area := broadcaster.snapshots[0].Areas[0]
		assert.Equal(t, "cell_37.775_-122.419", area.ID)
		assert.Equal(t, 20, area.Congestion, "集約の10にランダムウォークの+10が乗る")
	})

	t.Run("ランダムウォーク結果が永続化される", func(t *testing.T) {
		s, _, areasRepo := newTestScheduler(func() float64 { return 1.0 })
		s.RunOnce(ctx)

		area, err := areasRepo.GetByID(ctx, "area_airport_road")
		require.NoError(t, err)
		assert.Equal(t, 50, area.Congestion, "40 + 10")
	})
}

func TestNewBroadcastScheduler_DefaultInterval(t *testing.T) {
	s, _, _ := newTestScheduler(nil)
	assert.Equal(t, time.Second, s.interval)

	areasRepo := repoImpl.NewMemoryTrafficAreasRepository()
	ingestor := service.NewPingIngestor()
	aggregator := service.NewTrafficAggregator(ingestor, areasRepo)

	def := NewBroadcastScheduler(aggregator, areasRepo, &captureBroadcaster{}, 0)
	assert.Equal(t, model.DefaultBroadcastIntervalSeconds*time.Second, def.interval)
}
