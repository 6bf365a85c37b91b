package service

import (
	"navify-backend/internal/domain/model"
)

// SpatialBucketer pingを固定サイズのグリッドセルへグループ化する
// 緯度経度を独立に小数第3位へ丸める単純なグリッドで、測地的なビニングではない
type SpatialBucketer struct{}

// NewSpatialBucketer 新しいSpatialBucketerを作成する
func NewSpatialBucketer() *SpatialBucketer {
	return &SpatialBucketer{}
}

// Bucket pingをセルキーで集計する
// 決定的：同じ入力集合からは走査順に関係なく同じグループ化が得られる
func (b *SpatialBucketer) Bucket(pings []model.Ping) map[model.CellKey]*model.CellAccumulator {
	buckets := make(map[model.CellKey]*model.CellAccumulator)
	for _, p := range pings {
		key := model.NewCellKey(p.Lat, p.Lng)
		acc, ok := buckets[key]
		if !ok {
			acc = &model.CellAccumulator{Key: key}
			buckets[key] = acc
		}
		if p.Speed != nil {
			acc.Speeds = append(acc.Speeds, *p.Speed)
		}
		acc.Count++
	}
	return buckets
}
