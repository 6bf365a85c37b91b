package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"navify-backend/internal/domain/model"
)

// NominatimGeocoder OpenStreetMap Nominatimを使用したジオコーダー
// APIキー不要の最終フォールバック（優先順位3位）
type NominatimGeocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimGeocoder 新しいジオコーダーを生成する
func NewNominatimGeocoder() *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:    "https://nominatim.openstreetmap.org/search",
		userAgent:  "NavifyApp/1.0",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// NewNominatimGeocoderWithBaseURL テスト用にベースURLを差し替えてジオコーダーを生成する
func NewNominatimGeocoderWithBaseURL(baseURL string) *NominatimGeocoder {
	g := NewNominatimGeocoder()
	g.baseURL = baseURL
	return g
}

// Name バックエンド識別子を返す
func (n *NominatimGeocoder) Name() string {
	return model.GeocoderNominatim
}

// Available キー不要なので常に試行可能
func (n *NominatimGeocoder) Available() bool {
	return true
}

// Geocode 住所を座標へ解決する。countryはcountrycodesフィルタとして渡す
func (n *NominatimGeocoder) Geocode(ctx context.Context, address, country string) (*model.GeoLocation, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", address)
	params.Set("limit", strconv.Itoa(1))
	if country != "" {
		params.Set("countrycodes", country)
	}
	reqURL := fmt.Sprintf("%s?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	// Nominatimの利用規約によりUser-Agentの明示が必須
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	lat, err1 := strconv.ParseFloat(r.Lat, 64)
	lng, err2 := strconv.ParseFloat(r.Lon, 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("座標のパースに失敗: lat=%q lon=%q", r.Lat, r.Lon)
	}

	display := r.DisplayName
	if display == "" {
		display = address
	}
	return &model.GeoLocation{Lat: lat, Lng: lng, Address: display}, nil
}

// --- Nominatim APIのレスポンスをパースするための構造体 ---

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
