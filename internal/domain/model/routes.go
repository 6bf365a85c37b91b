package model

import "github.com/paulmach/orb/geojson"

// LatLng 緯度経度を表す基本的な型（経路検索などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeoLocation ジオコーディング結果（座標＋解決された住所）
type GeoLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// ToLatLng GeoLocationを座標のみのLatLngに変換
func (g *GeoLocation) ToLatLng() LatLng {
	return LatLng{Lat: g.Lat, Lng: g.Lng}
}

// Step 経路の1ステップ（案内文と距離・時間の表示用テキスト）
type Step struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	Name        string `json:"name,omitempty"`
}

// Route 正規化された経路（計算結果の一時データ、保存しない限り永続化されない）
type Route struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Summary        string            `json:"summary,omitempty"`
	DistanceKm     float64           `json:"distance_km"`
	DistanceText   string            `json:"distance_text"`
	EtaMin         int               `json:"eta_min"`
	DurationText   string            `json:"duration_text"`
	Steps          []Step            `json:"steps"`
	Geometry       *geojson.Geometry `json:"geometry,omitempty"` // GeoJSON LineString
	OriginLocation *GeoLocation      `json:"origin_location,omitempty"`
	DestLocation   *GeoLocation      `json:"dest_location,omitempty"`
	Provider       string            `json:"provider"`
}

// RouteResult 経路検索APIのレスポンス全体
type RouteResult struct {
	Origin         string       `json:"origin"`
	Dest           string       `json:"dest"`
	OriginLocation *GeoLocation `json:"origin_location"`
	DestLocation   *GeoLocation `json:"dest_location"`
	Generated      int64        `json:"generated"`
	Routes         []Route      `json:"routes"`
	Status         string       `json:"status"`
	Provider       string       `json:"provider"`
	Note           string       `json:"note,omitempty"`
}

// SavedRoute ユーザーが明示的に保存した経路（CRUDエンティティ）
type SavedRoute struct {
	ID            string  `json:"id" db:"id"`
	UserID        string  `json:"user_id" db:"user_id"`
	OriginAddress string  `json:"origin_address" db:"origin_address"`
	OriginLat     float64 `json:"origin_lat" db:"origin_lat"`
	OriginLng     float64 `json:"origin_lng" db:"origin_lng"`
	DestAddress   string  `json:"dest_address" db:"dest_address"`
	DestLat       float64 `json:"dest_lat" db:"dest_lat"`
	DestLng       float64 `json:"dest_lng" db:"dest_lng"`
	DistanceKm    float64 `json:"distance_km" db:"distance_km"`
	DurationMin   int     `json:"duration_min" db:"duration_min"`
	RouteData     string  `json:"route_data,omitempty" db:"route_data"`
}

// SaveRouteRequest POST /api/routes/saved のリクエストボディ
type SaveRouteRequest struct {
	OriginAddress string  `json:"origin_address"`
	OriginLat     float64 `json:"origin_lat"`
	OriginLng     float64 `json:"origin_lng"`
	DestAddress   string  `json:"dest_address"`
	DestLat       float64 `json:"dest_lat"`
	DestLng       float64 `json:"dest_lng"`
	DistanceKm    float64 `json:"distance_km"`
	DurationMin   int     `json:"duration_min"`
	RouteData     string  `json:"route_data"`
}
