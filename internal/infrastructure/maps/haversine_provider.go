package maps

import (
	"context"
	"log"
	"math"

	"navify-backend/internal/domain/helper"
	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// HaversineFallbackProvider ネットワークに依存しない決定的なローカルフォールバック
// 大圏距離と渋滞状況に基づく簡易速度モデルで経路を推定する
// チェーン全体が必ず非エラーで返ることを保証する最後の砦
type HaversineFallbackProvider struct {
	areasRepo repository.TrafficAreasRepository
}

// NewHaversineFallbackProvider 新しいプロバイダを生成する
func NewHaversineFallbackProvider(areasRepo repository.TrafficAreasRepository) *HaversineFallbackProvider {
	return &HaversineFallbackProvider{areasRepo: areasRepo}
}

// Name プロバイダ識別子を返す
func (p *HaversineFallbackProvider) Name() string {
	return model.ProviderFallback
}

// Available 常に試行可能（これがチェーンの成功保証）
func (p *HaversineFallbackProvider) Available() bool {
	return true
}

// ComputeRoutes ハーバサイン距離とエリアの平均渋滞度から経路を推定する
// 渋滞エリアの読み取りに失敗しても中立値50で続行し、決してエラーを返さない
func (p *HaversineFallbackProvider) ComputeRoutes(ctx context.Context, origin, dest *model.GeoLocation) ([]model.Route, error) {
	avgCongestion := 50
	if p.areasRepo != nil {
		if areas, err := p.areasRepo.GetAll(ctx); err == nil && len(areas) > 0 {
			sum := 0
			for _, a := range areas {
				sum += a.Congestion
			}
			avgCongestion = int(math.Round(float64(sum) / float64(len(areas))))
		} else if err != nil {
			log.Printf("⚠️ フォールバック経路: 渋滞エリアの読み取りに失敗、中立値を使用: %v", err)
		}
	}
	baseFast := 8 + int(math.Round(float64(avgCongestion)/8))

	distanceKm := helper.HaversineDistanceKm(origin.Lat, origin.Lng, dest.Lat, dest.Lng)
	estimatedMin := baseFast + int(math.Round(distanceKm/50*60))
	if estimatedMin < 6 {
		estimatedMin = 6
	}

	geometry := helper.StraightLineGeometry(origin.ToLatLng(), dest.ToLatLng())
	scenicMin := int(math.Round(float64(estimatedMin) * 1.3))

	return []model.Route{
		{
			ID:             NewRouteID(),
			Name:           model.RouteNameFastest,
			DistanceKm:     distanceKm,
			DistanceText:   FormatDistanceKm(distanceKm),
			EtaMin:         estimatedMin,
			DurationText:   FormatDurationMin(estimatedMin),
			Steps:          []model.Step{},
			Geometry:       geometry,
			OriginLocation: origin,
			DestLocation:   dest,
			Provider:       model.ProviderFallback,
		},
		{
			ID:             NewRouteID(),
			Name:           model.RouteNameScenic,
			DistanceKm:     distanceKm * 1.2,
			DistanceText:   FormatDistanceKm(distanceKm * 1.2),
			EtaMin:         scenicMin,
			DurationText:   FormatDurationMin(scenicMin),
			Steps:          []model.Step{},
			Geometry:       geometry,
			OriginLocation: origin,
			DestLocation:   dest,
			Provider:       model.ProviderFallback,
		},
	}, nil
}
