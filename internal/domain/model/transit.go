package model

// TransitStop 交通機関の停留所（DB保存エンティティ）
type TransitStop struct {
	ID             string   `json:"id" db:"id"`
	Name           string   `json:"name" db:"name"`
	Line           string   `json:"line" db:"line"`
	Lat            float64  `json:"lat" db:"lat"`
	Lng            float64  `json:"lng" db:"lng"`
	NextArrivalMin *int     `json:"next_arrival_min,omitempty" db:"next_arrival_min"`
	Status         string   `json:"status,omitempty" db:"status"`
}

// TransitArrival 到着予測1件（クライアント表示用）
type TransitArrival struct {
	Line     string `json:"line"`
	InMin    int    `json:"in_min"`
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}

// TransitResponse GET /api/transit のレスポンス
type TransitResponse struct {
	Stop     string           `json:"stop"`
	Next     []TransitArrival `json:"next"`
	Location *LatLng          `json:"location,omitempty"`
}

// Place 地名検索の結果1件
type Place struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Category string   `json:"category,omitempty"`
	Address  string   `json:"address,omitempty"`
}
