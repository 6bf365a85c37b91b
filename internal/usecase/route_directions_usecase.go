package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
	"navify-backend/internal/domain/service"
)

// RouteDirectionsUseCase 経路検索・ジオコーディング・保存済み経路のユースケース
type RouteDirectionsUseCase interface {
	// GetDirections 出発地と目的地の入力から経路を計算する
	GetDirections(ctx context.Context, origin, dest, country string) (*model.RouteResult, error)

	// Geocode 住所文字列を座標に解決する。見つからない場合はErrAddressNotFound
	Geocode(ctx context.Context, address, country string) (*model.GeoLocation, error)

	SaveRoute(ctx context.Context, userID string, req *model.SaveRouteRequest) (*model.SavedRoute, error)
	GetSavedRoutes(ctx context.Context, userID string) ([]model.SavedRoute, error)
	DeleteSavedRoute(ctx context.Context, userID, routeID string) error
}

// routeDirectionsUseCaseImpl RouteDirectionsUseCaseの実装
type routeDirectionsUseCaseImpl struct {
	chain     service.RouteChainService
	resolver  service.LocationResolver
	savedRepo repository.SavedRoutesRepository
}

// NewRouteDirectionsUseCase 新しいRouteDirectionsUseCaseインスタンスを作成
// savedRepoがnilの場合、保存済み経路の操作はErrPersistenceErrorを返す
func NewRouteDirectionsUseCase(
	chain service.RouteChainService,
	resolver service.LocationResolver,
	savedRepo repository.SavedRoutesRepository,
) RouteDirectionsUseCase {
	return &routeDirectionsUseCaseImpl{
		chain:     chain,
		resolver:  resolver,
		savedRepo: savedRepo,
	}
}

// GetDirections 出発地と目的地の入力から経路を計算する
func (u *routeDirectionsUseCaseImpl) GetDirections(ctx context.Context, origin, dest, country string) (*model.RouteResult, error) {
	if origin == "" || dest == "" {
		return nil, fmt.Errorf("%w: originとdestは必須です", model.ErrInvalidInput)
	}
	return u.chain.ComputeRoutes(ctx, origin, dest, country)
}

// Geocode 住所文字列を座標に解決する
func (u *routeDirectionsUseCaseImpl) Geocode(ctx context.Context, address, country string) (*model.GeoLocation, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: addressは必須です", model.ErrInvalidInput)
	}
	loc, err := u.resolver.Resolve(ctx, address, country)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: %q", model.ErrAddressNotFound, address)
	}
	return loc, nil
}

// SaveRoute 経路をユーザーに紐づけて保存する
func (u *routeDirectionsUseCaseImpl) SaveRoute(ctx context.Context, userID string, req *model.SaveRouteRequest) (*model.SavedRoute, error) {
	if u.savedRepo == nil {
		return nil, fmt.Errorf("%w: 保存済み経路ストアが設定されていません", model.ErrPersistenceError)
	}
	if req == nil || req.OriginAddress == "" || req.DestAddress == "" {
		return nil, fmt.Errorf("%w: origin_addressとdest_addressは必須です", model.ErrInvalidInput)
	}

	route := &model.SavedRoute{
		ID:            uuid.New().String(),
		UserID:        userID,
		OriginAddress: req.OriginAddress,
		OriginLat:     req.OriginLat,
		OriginLng:     req.OriginLng,
		DestAddress:   req.DestAddress,
		DestLat:       req.DestLat,
		DestLng:       req.DestLng,
		DistanceKm:    req.DistanceKm,
		DurationMin:   req.DurationMin,
		RouteData:     req.RouteData,
	}
	if err := u.savedRepo.Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// GetSavedRoutes 指定ユーザーの保存済み経路一覧を取得する
func (u *routeDirectionsUseCaseImpl) GetSavedRoutes(ctx context.Context, userID string) ([]model.SavedRoute, error) {
	if u.savedRepo == nil {
		return nil, fmt.Errorf("%w: 保存済み経路ストアが設定されていません", model.ErrPersistenceError)
	}
	routes, err := u.savedRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []model.SavedRoute{}
	}
	return routes, nil
}

// DeleteSavedRoute 保存済み経路を削除する（所有者チェック付き）
func (u *routeDirectionsUseCaseImpl) DeleteSavedRoute(ctx context.Context, userID, routeID string) error {
	if u.savedRepo == nil {
		return fmt.Errorf("%w: 保存済み経路ストアが設定されていません", model.ErrPersistenceError)
	}
	route, err := u.savedRepo.GetByID(ctx, routeID)
	if err != nil {
		return err
	}
	if route.UserID != userID {
		return fmt.Errorf("保存済み経路 ID %s: %w", routeID, model.ErrNotFound)
	}
	return u.savedRepo.Delete(ctx, routeID)
}
