package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// MemoryTrafficAreasRepository インメモリの渋滞エリアリポジトリ
// 外部ストアが設定されていないローカル開発とユニットテストで使う
type MemoryTrafficAreasRepository struct {
	mu    sync.RWMutex
	areas map[string]model.TrafficArea
}

// NewMemoryTrafficAreasRepository 空のインスタンスを作成
func NewMemoryTrafficAreasRepository() *MemoryTrafficAreasRepository {
	return &MemoryTrafficAreasRepository{
		areas: make(map[string]model.TrafficArea),
	}
}

// NewSeededMemoryTrafficAreasRepository デモ用の初期エリア入りインスタンスを作成
func NewSeededMemoryTrafficAreasRepository() *MemoryTrafficAreasRepository {
	r := NewMemoryTrafficAreasRepository()
	seeds := []model.TrafficArea{
		{ID: "area_city_center", Name: "City Center", Congestion: 65},
		{ID: "area_airport_road", Name: "Airport Road", Congestion: 40},
		{ID: "area_industrial", Name: "Industrial Area", Congestion: 80},
	}
	for _, s := range seeds {
		s.UpdatedAt = time.Now().Format(time.RFC3339)
		r.areas[s.ID] = s
	}
	return r
}

var _ repository.TrafficAreasRepository = (*MemoryTrafficAreasRepository)(nil)

// GetAll 全渋滞エリアを名前順で取得する
func (r *MemoryTrafficAreasRepository) GetAll(ctx context.Context) ([]model.TrafficArea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	areas := make([]model.TrafficArea, 0, len(r.areas))
	for _, a := range r.areas {
		areas = append(areas, a)
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].Name < areas[j].Name })
	return areas, nil
}

// GetByID 指定IDの渋滞エリアを取得する
func (r *MemoryTrafficAreasRepository) GetByID(ctx context.Context, id string) (*model.TrafficArea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.areas[id]
	if !ok {
		return nil, fmt.Errorf("渋滞エリア ID %s: %w", id, model.ErrNotFound)
	}
	return &a, nil
}

// Create 渋滞エリアを新規作成する
func (r *MemoryTrafficAreasRepository) Create(ctx context.Context, area *model.TrafficArea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *area
	stored.UpdatedAt = time.Now().Format(time.RFC3339)
	r.areas[area.ID] = stored
	return nil
}

// Update 渋滞エリアを更新する
func (r *MemoryTrafficAreasRepository) Update(ctx context.Context, area *model.TrafficArea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[area.ID]; !ok {
		return fmt.Errorf("渋滞エリア ID %s: %w", area.ID, model.ErrNotFound)
	}
	stored := *area
	stored.UpdatedAt = time.Now().Format(time.RFC3339)
	r.areas[area.ID] = stored
	return nil
}

// Upsert 存在すれば更新、なければ作成する（ロック下なので行アトミック）
func (r *MemoryTrafficAreasRepository) Upsert(ctx context.Context, area *model.TrafficArea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *area
	stored.UpdatedAt = time.Now().Format(time.RFC3339)
	r.areas[area.ID] = stored
	return nil
}

// Delete 指定IDの渋滞エリアを削除する
func (r *MemoryTrafficAreasRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[id]; !ok {
		return fmt.Errorf("渋滞エリア ID %s: %w", id, model.ErrNotFound)
	}
	delete(r.areas, id)
	return nil
}
