package repository

import (
	"context"
	"database/sql"
	"fmt"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
	"navify-backend/internal/infrastructure/database"
)

// PostgresTrafficAreasRepository PostgreSQL直接接続を使用した渋滞エリアリポジトリ
type PostgresTrafficAreasRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresTrafficAreasRepository 新しいインスタンスを作成
func NewPostgresTrafficAreasRepository(client *database.PostgreSQLClient) repository.TrafficAreasRepository {
	return &PostgresTrafficAreasRepository{
		client: client,
	}
}

// trafficAreaRow スキャン用の中間構造体（lat/lngはNULLABLE）
type trafficAreaRow struct {
	ID         string
	Name       string
	Congestion int
	Lat        sql.NullFloat64
	Lng        sql.NullFloat64
	UpdatedAt  sql.NullString
}

// toTrafficArea 行をドメインモデルに変換する
func (row *trafficAreaRow) toTrafficArea() model.TrafficArea {
	area := model.TrafficArea{
		ID:         row.ID,
		Name:       row.Name,
		Congestion: row.Congestion,
	}
	if row.Lat.Valid {
		area.Lat = &row.Lat.Float64
	}
	if row.Lng.Valid {
		area.Lng = &row.Lng.Float64
	}
	if row.UpdatedAt.Valid {
		area.UpdatedAt = row.UpdatedAt.String
	}
	return area
}

// GetAll 全渋滞エリアを名前順で取得する
func (r *PostgresTrafficAreasRepository) GetAll(ctx context.Context) ([]model.TrafficArea, error) {
	query := `SELECT id, name, congestion, lat, lng, updated_at FROM traffic_areas ORDER BY name`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("渋滞エリアデータの取得失敗: %w", err)
	}
	defer rows.Close()

	var areas []model.TrafficArea
	for rows.Next() {
		var row trafficAreaRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Congestion, &row.Lat, &row.Lng, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("渋滞エリア行のスキャン失敗: %w", err)
		}
		areas = append(areas, row.toTrafficArea())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("渋滞エリア行の走査失敗: %w", err)
	}

	return areas, nil
}

// GetByID 指定IDの渋滞エリアを取得する
func (r *PostgresTrafficAreasRepository) GetByID(ctx context.Context, id string) (*model.TrafficArea, error) {
	query := `SELECT id, name, congestion, lat, lng, updated_at FROM traffic_areas WHERE id = $1`

	var row trafficAreaRow
	err := r.client.DB.QueryRowContext(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Congestion, &row.Lat, &row.Lng, &row.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("渋滞エリア ID %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("渋滞エリアデータの取得失敗: %w", err)
	}

	area := row.toTrafficArea()
	return &area, nil
}

// Create 渋滞エリアを新規作成する
func (r *PostgresTrafficAreasRepository) Create(ctx context.Context, area *model.TrafficArea) error {
	query := `INSERT INTO traffic_areas (id, name, congestion, lat, lng) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.client.DB.ExecContext(ctx, query, area.ID, area.Name, area.Congestion, area.Lat, area.Lng)
	if err != nil {
		return fmt.Errorf("渋滞エリアデータの作成失敗: %w", err)
	}

	return nil
}

// Update 渋滞エリアを更新する
func (r *PostgresTrafficAreasRepository) Update(ctx context.Context, area *model.TrafficArea) error {
	query := `UPDATE traffic_areas SET name = $2, congestion = $3, lat = $4, lng = $5, updated_at = CURRENT_TIMESTAMP WHERE id = $1`

	result, err := r.client.DB.ExecContext(ctx, query, area.ID, area.Name, area.Congestion, area.Lat, area.Lng)
	if err != nil {
		return fmt.Errorf("渋滞エリアデータの更新失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("渋滞エリア ID %s: %w", area.ID, model.ErrNotFound)
	}

	return nil
}

// Upsert 存在すれば更新、なければ作成する（単一文なので行アトミック）
func (r *PostgresTrafficAreasRepository) Upsert(ctx context.Context, area *model.TrafficArea) error {
	query := `INSERT INTO traffic_areas (id, name, congestion, lat, lng)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET congestion = EXCLUDED.congestion, lat = EXCLUDED.lat, lng = EXCLUDED.lng, updated_at = CURRENT_TIMESTAMP`

	_, err := r.client.DB.ExecContext(ctx, query, area.ID, area.Name, area.Congestion, area.Lat, area.Lng)
	if err != nil {
		return fmt.Errorf("渋滞エリアデータのupsert失敗: %w", err)
	}

	return nil
}

// Delete 指定IDの渋滞エリアを削除する
func (r *PostgresTrafficAreasRepository) Delete(ctx context.Context, id string) error {
	result, err := r.client.DB.ExecContext(ctx, `DELETE FROM traffic_areas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("渋滞エリアデータの削除失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("渋滞エリア ID %s: %w", id, model.ErrNotFound)
	}

	return nil
}
