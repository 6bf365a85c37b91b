package model

// ProviderConstants 経路・ジオコーディングプロバイダの識別子
const (
	ProviderOSRM     = "osrm"
	ProviderGeoapify = "geoapify"
	ProviderGoogle   = "google"
	ProviderFallback = "fallback"

	GeocoderGeoapify  = "geoapify"
	GeocoderGoogle    = "google"
	GeocoderNominatim = "nominatim"
)

// TrafficConstants 渋滞集約パイプラインの定数
const (
	// PingRetentionMillis ping保持ウィンドウ（2分）
	PingRetentionMillis = 2 * 60 * 1000

	// CongestionMin / CongestionMax 集約由来の渋滞スコアのクランプ範囲
	CongestionMin = 5
	CongestionMax = 95

	// DefaultBroadcastIntervalSeconds ブロードキャストスケジューラの既定周期
	DefaultBroadcastIntervalSeconds = 8
)

// RouteNameConstants クライアント表示用のルート名
const (
	RouteNameFastest = "⭐ Fastest Route"
	RouteNameScenic  = "Scenic Route"
)
