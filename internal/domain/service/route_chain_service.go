package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// RouteChainService 経路プロバイダを優先順に試すチェーンランナー
// プロバイダの追加・並べ替えは構築時のリスト変更だけで済む
type RouteChainService interface {
	// ComputeRoutes 出発地・目的地の入力を解決して経路を計算する
	// どちらかの地点が解決できない場合はErrAddressNotFoundを返す
	// 両方解決できた場合、ローカルフォールバックがあるため必ず非エラーで返る
	ComputeRoutes(ctx context.Context, originInput, destInput, country string) (*model.RouteResult, error)
}

// routeChainServiceImpl RouteChainServiceの実装
type routeChainServiceImpl struct {
	resolver  LocationResolver
	providers []repository.RouteProvider
}

// NewRouteChainService 新しいRouteChainServiceインスタンスを作成
// providersは優先順（先頭が最優先）で渡す。末尾には必ず成功するフォールバックを置くこと
func NewRouteChainService(resolver LocationResolver, providers ...repository.RouteProvider) RouteChainService {
	return &routeChainServiceImpl{
		resolver:  resolver,
		providers: providers,
	}
}

// ComputeRoutes 解決→チェーン試行→レスポンス構築
func (s *routeChainServiceImpl) ComputeRoutes(ctx context.Context, originInput, destInput, country string) (*model.RouteResult, error) {
	originLoc, err := s.resolver.Resolve(ctx, originInput, country)
	if err != nil {
		return nil, err
	}
	if originLoc == nil {
		return nil, fmt.Errorf("%w: origin %q", model.ErrAddressNotFound, originInput)
	}

	destLoc, err := s.resolver.Resolve(ctx, destInput, country)
	if err != nil {
		return nil, err
	}
	if destLoc == nil {
		return nil, fmt.Errorf("%w: dest %q", model.ErrAddressNotFound, destInput)
	}

	for _, p := range s.providers {
		if !p.Available() {
			continue
		}
		routes, err := p.ComputeRoutes(ctx, originLoc, destLoc)
		if err != nil {
			// 個別プロバイダの失敗はチェーンを中断しない
			log.Printf("⚠️ 経路プロバイダ失敗 (%s): %v", p.Name(), err)
			continue
		}
		if len(routes) == 0 {
			continue
		}

		result := &model.RouteResult{
			Origin:         originInput,
			Dest:           destInput,
			OriginLocation: originLoc,
			DestLocation:   destLoc,
			Generated:      time.Now().UnixMilli(),
			Routes:         routes,
			Status:         "OK",
			Provider:       p.Name(),
		}
		if p.Name() == model.ProviderFallback {
			result.Provider = "fallback (mock)"
			result.Note = "Using estimated route. For more accurate results, configure OSRM, Geoapify, or Google Maps API."
		}
		return result, nil
	}

	// フォールバックプロバイダがリストにある限りここには到達しない
	return nil, model.ErrProviderUnavailable
}
