package scheduler

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
	"navify-backend/internal/domain/service"
)

// Broadcaster スナップショットの配信先（実体はrealtime.Hub）
type Broadcaster interface {
	Broadcast(snapshot *model.TrafficSnapshot)
}

// BroadcastScheduler 一定間隔で渋滞データの更新と配信を行うスケジューラ
// 全ステップを単一goroutineで直列実行するため、サイクル間の競合は起きない
type BroadcastScheduler struct {
	aggregator  service.TrafficAggregator
	areasRepo   repository.TrafficAreasRepository
	broadcaster Broadcaster
	interval    time.Duration
	randFloat   func() float64 // テストで差し替え可能な乱数源
}

// NewBroadcastScheduler 新しいBroadcastSchedulerを作成
// intervalが0以下の場合はデフォルト（8秒）を使う
func NewBroadcastScheduler(
	aggregator service.TrafficAggregator,
	areasRepo repository.TrafficAreasRepository,
	broadcaster Broadcaster,
	interval time.Duration,
) *BroadcastScheduler {
	if interval <= 0 {
		interval = model.DefaultBroadcastIntervalSeconds * time.Second
	}
	return &BroadcastScheduler{
		aggregator:  aggregator,
		areasRepo:   areasRepo,
		broadcaster: broadcaster,
		interval:    interval,
		randFloat:   rand.Float64,
	}
}

// Start スケジューラのループを開始する（goroutineで呼ぶこと）
// ctxがキャンセルされるまで動き続ける
func (s *BroadcastScheduler) Start(ctx context.Context) {
	log.Printf("🚀 渋滞配信スケジューラ開始 (間隔: %v)", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("🛑 渋滞配信スケジューラ停止")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce 1サイクル分の更新と配信を実行する
// ping集約 → シミュレーション更新 → スナップショット配信 の順
func (s *BroadcastScheduler) RunOnce(ctx context.Context) {
	s.aggregator.RunCycle(ctx)
	s.simulateDrift(ctx)

	areas, err := s.areasRepo.GetAll(ctx)
	if err != nil {
		log.Printf("❌ 配信用スナップショットの取得に失敗: %v", err)
		return
	}

	s.broadcaster.Broadcast(model.NewTrafficSnapshot(areas))
}

// simulateDrift 全エリアの渋滞度をランダムウォークで揺らす
// デモでもマップが生きて見えるようにするための演出。集約直後のセルを含む
// 全行に適用される
func (s *BroadcastScheduler) simulateDrift(ctx context.Context) {
	areas, err := s.areasRepo.GetAll(ctx)
	if err != nil {
		log.Printf("⚠️ シミュレーション更新のエリア取得に失敗: %v", err)
		return
	}

	for i := range areas {
		delta := int(math.Round((s.randFloat() - 0.5) * 20))
		areas[i].Congestion = service.ClampCongestion(float64(areas[i].Congestion + delta))
		if err := s.areasRepo.Upsert(ctx, &areas[i]); err != nil {
			log.Printf("⚠️ シミュレーション更新の保存に失敗 (area=%s): %v", areas[i].ID, err)
			return
		}
	}
}
