package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

const (
	defaultPlacesLimit = 6
	maxPlacesLimit     = 20
)

// PlacesUseCase 地名・スポット検索のユースケース
// 検索バックエンドを優先順に試し、最初に結果を返したものを採用する
type PlacesUseCase interface {
	Search(ctx context.Context, query, country string, limit int) ([]model.Place, error)
}

// placesUseCaseImpl PlacesUseCaseの実装
type placesUseCaseImpl struct {
	providers []repository.PlacesProvider
}

// NewPlacesUseCase 新しいPlacesUseCaseインスタンスを作成
// providersは優先順（先頭が最優先）で渡す
func NewPlacesUseCase(providers ...repository.PlacesProvider) PlacesUseCase {
	return &placesUseCaseImpl{providers: providers}
}

// Search 検索語にマッチする場所のリストを返す
func (u *placesUseCaseImpl) Search(ctx context.Context, query, country string, limit int) ([]model.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: qは必須です", model.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultPlacesLimit
	}
	if limit > maxPlacesLimit {
		limit = maxPlacesLimit
	}

	for _, p := range u.providers {
		if !p.Available() {
			continue
		}
		places, err := p.Search(ctx, query, country, limit)
		if err != nil {
			log.Printf("⚠️ スポット検索失敗 (%s): %v", p.Name(), err)
			continue
		}
		if len(places) > 0 {
			return places, nil
		}
	}

	return []model.Place{}, nil
}
