package service

import (
	"context"
	"log"
	"sort"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// TrafficAggregator pingバッファをセル単位に集約して渋滞エリアへ反映する
type TrafficAggregator interface {
	// RunCycle 1回の集約サイクルを実行し、upsertしたエリアのリストを返す
	// 永続化エラーはログに残して空リストを返す（スケジューラを落とさない）
	RunCycle(ctx context.Context) []model.TrafficArea
}

// trafficAggregatorImpl TrafficAggregatorの実装
type trafficAggregatorImpl struct {
	ingestor  *PingIngestor
	bucketer  *SpatialBucketer
	estimator *CongestionEstimator
	areasRepo repository.TrafficAreasRepository
}

// NewTrafficAggregator 新しいTrafficAggregatorインスタンスを作成
func NewTrafficAggregator(ingestor *PingIngestor, areasRepo repository.TrafficAreasRepository) TrafficAggregator {
	return &trafficAggregatorImpl{
		ingestor:  ingestor,
		bucketer:  NewSpatialBucketer(),
		estimator: NewCongestionEstimator(),
		areasRepo: areasRepo,
	}
}

// RunCycle prune→snapshot→bucket→estimate→upsert の1サイクルを実行する
func (a *trafficAggregatorImpl) RunCycle(ctx context.Context) []model.TrafficArea {
	a.ingestor.Prune()
	pings := a.ingestor.Snapshot()
	if len(pings) == 0 {
		return []model.TrafficArea{}
	}

	buckets := a.bucketer.Bucket(pings)

	// マップ走査順に依存しないよう、キー順で処理する
	keys := make([]model.CellKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].LatMilli != keys[j].LatMilli {
			return keys[i].LatMilli < keys[j].LatMilli
		}
		return keys[i].LngMilli < keys[j].LngMilli
	})

	updates := make([]model.TrafficArea, 0, len(keys))
	for _, key := range keys {
		acc := buckets[key]
		congestion := a.estimator.Estimate(acc)
		lat := key.Lat()
		lng := key.Lng()
		updates = append(updates, model.TrafficArea{
			ID:         key.AreaID(),
			Name:       key.AreaName(),
			Congestion: congestion,
			Lat:        &lat,
			Lng:        &lng,
		})
	}

	for i := range updates {
		if err := a.areasRepo.Upsert(ctx, &updates[i]); err != nil {
			log.Printf("❌ 集約サイクルの永続化に失敗 (area=%s): %v", updates[i].ID, err)
			return []model.TrafficArea{}
		}
	}

	return updates
}
