package model

import (
	"fmt"
	"math"
	"time"
)

// Ping アクティブなナビゲーションセッションから送られるGPS位置レポート
// 永続化されない一時データ（保持ウィンドウを過ぎたら破棄される）
type Ping struct {
	Lat   float64  `json:"lat"`
	Lng   float64  `json:"lng"`
	Speed *float64 `json:"speed,omitempty"` // km/h、速度不明の場合はnil
	Ts    int64    `json:"ts"`              // UNIXミリ秒
}

// PingRequest POST /api/traffic/ping のリクエストボディ
// lat/lngの欠落を検出するためポインタで受ける
type PingRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Speed *float64 `json:"speed"`
	Ts    *int64   `json:"ts"`
}

// CellKey 緯度経度を固定精度（小数第3位 ≈ 緯度111m）に丸めたグリッドセルの複合キー
// 文字列キーの浮動小数点表現ゆれを避けるため、ミリ度の整数ペアで保持する
type CellKey struct {
	LatMilli int64
	LngMilli int64
}

// NewCellKey 緯度経度からセルキーを導出する
func NewCellKey(lat, lng float64) CellKey {
	return CellKey{
		LatMilli: int64(math.Round(lat * 1000)),
		LngMilli: int64(math.Round(lng * 1000)),
	}
}

// Lat セル中心の緯度（小数第3位に丸めた値）
func (k CellKey) Lat() float64 {
	return float64(k.LatMilli) / 1000
}

// Lng セル中心の経度（小数第3位に丸めた値）
func (k CellKey) Lng() float64 {
	return float64(k.LngMilli) / 1000
}

// AreaID セルキーから決定的にTrafficAreaのIDを導出する（例: "cell_37.775_-122.419"）
func (k CellKey) AreaID() string {
	return fmt.Sprintf("cell_%s_%s", trimFloat(k.Lat()), trimFloat(k.Lng()))
}

// AreaName セルキーから表示名を導出する（例: "Cell 37.775,-122.419"）
func (k CellKey) AreaName() string {
	return fmt.Sprintf("Cell %.3f,%.3f", k.Lat(), k.Lng())
}

// trimFloat 末尾ゼロを含まないJavaScript風の数値表現を返す
func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

// CellAccumulator 1セル分のping統計（集約サイクルごとに常に再構築される）
type CellAccumulator struct {
	Key    CellKey
	Speeds []float64 // 速度が報告されたpingのみ
	Count  int       // セル内の全ping数
}

// TrafficArea 渋滞エリアの永続エンティティ
type TrafficArea struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Congestion int      `json:"congestion" db:"congestion"` // 0-100（集約由来は5-95にクランプ）
	Lat        *float64 `json:"lat" db:"lat"`
	Lng        *float64 `json:"lng" db:"lng"`
	UpdatedAt  string   `json:"updated_at,omitempty" db:"updated_at"`
}

// TrafficSnapshot 全TrafficAreaの現在集合（購読者へアトミックに配信される）
type TrafficSnapshot struct {
	Timestamp int64         `json:"timestamp"`
	Areas     []TrafficArea `json:"areas"`
}

// NewTrafficSnapshot 現在時刻のスナップショットを作成
func NewTrafficSnapshot(areas []TrafficArea) *TrafficSnapshot {
	if areas == nil {
		areas = []TrafficArea{}
	}
	return &TrafficSnapshot{
		Timestamp: time.Now().UnixMilli(),
		Areas:     areas,
	}
}
