package usecase

import (
	"context"
	"log"
	"math/rand"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// TransitUseCase 近傍の交通機関到着予測を返すユースケース
// Google Places → DBの停留所 → 渋滞ホットスポット由来のモック の順でフォールバックする
type TransitUseCase interface {
	GetArrivals(ctx context.Context, lat, lng float64) (*model.TransitResponse, error)
}

// transitUseCaseImpl TransitUseCaseの実装
type transitUseCaseImpl struct {
	stationProvider repository.TransitStationProvider
	stopsRepo       repository.TransitStopsRepository
	areasRepo       repository.TrafficAreasRepository
}

// NewTransitUseCase 新しいTransitUseCaseインスタンスを作成
// stationProviderとstopsRepoはnil可（その段はスキップされる）
func NewTransitUseCase(
	stationProvider repository.TransitStationProvider,
	stopsRepo repository.TransitStopsRepository,
	areasRepo repository.TrafficAreasRepository,
) TransitUseCase {
	return &transitUseCaseImpl{
		stationProvider: stationProvider,
		stopsRepo:       stopsRepo,
		areasRepo:       areasRepo,
	}
}

// GetArrivals 指定座標の近傍停留所と到着予測を返す
func (u *transitUseCaseImpl) GetArrivals(ctx context.Context, lat, lng float64) (*model.TransitResponse, error) {
	// 第1段: 外部APIで実在の駅を検索
	if u.stationProvider != nil && u.stationProvider.Available() {
		arrivals, err := u.stationProvider.NearbyStations(ctx, lat, lng)
		if err != nil {
			log.Printf("⚠️ 近傍駅検索に失敗、次の手段へ: %v", err)
		} else if len(arrivals) > 0 {
			return &model.TransitResponse{
				Stop:     arrivals[0].Line,
				Next:     arrivals,
				Location: &model.LatLng{Lat: lat, Lng: lng},
			}, nil
		}
	}

	// 第2段: DBに登録された停留所から組み立てる
	if u.stopsRepo != nil {
		stops, err := u.stopsRepo.FindNearby(ctx, lat, lng, 1000)
		if err != nil {
			log.Printf("⚠️ 停留所データの取得に失敗、次の手段へ: %v", err)
		} else if len(stops) > 0 {
			if len(stops) > 3 {
				stops = stops[:3]
			}
			arrivals := make([]model.TransitArrival, 0, len(stops))
			for idx, stop := range stops {
				inMin := 4 + idx*6
				if stop.NextArrivalMin != nil {
					inMin = *stop.NextArrivalMin
				}
				status := stop.Status
				if status == "" {
					status = "On time"
				}
				arrivals = append(arrivals, model.TransitArrival{
					Line:     stop.Line,
					InMin:    inMin,
					Status:   status,
					Location: stop.Name,
				})
			}
			return &model.TransitResponse{
				Stop:     stops[0].Name,
				Next:     arrivals,
				Location: &model.LatLng{Lat: lat, Lng: lng},
			}, nil
		}
	}

	// 第3段: 渋滞ホットスポットに基づくモック
	return u.mockArrivals(ctx, lat, lng), nil
}

// mockArrivals 最も渋滞しているエリア名を停留所名に使ったモック到着予測
// デモ用途でも一貫した見た目になるよう、渋滞度から遅延を導出する
func (u *transitUseCaseImpl) mockArrivals(ctx context.Context, lat, lng float64) *model.TransitResponse {
	stopName := "Central Station"
	congestion := 50
	if u.areasRepo != nil {
		areas, err := u.areasRepo.GetAll(ctx)
		if err == nil && len(areas) > 0 {
			hottest := areas[0]
			for _, a := range areas[1:] {
				if a.Congestion > hottest.Congestion {
					hottest = a
				}
			}
			stopName = hottest.Name + " Stop"
			congestion = hottest.Congestion
		}
	}

	delayed := "On time"
	if congestion > 70 {
		delayed = "Delayed"
	}

	arrivals := []model.TransitArrival{
		{Line: "Bus 12", InMin: 3 + rand.Intn(4), Status: "On time", Location: stopName},
		{Line: "Bus 45", InMin: 9 + rand.Intn(5), Status: delayed, Location: stopName},
		{Line: "Metro A", InMin: 14 + rand.Intn(6), Status: "On time", Location: stopName},
	}

	return &model.TransitResponse{
		Stop:     stopName,
		Next:     arrivals,
		Location: &model.LatLng{Lat: lat, Lng: lng},
	}
}
