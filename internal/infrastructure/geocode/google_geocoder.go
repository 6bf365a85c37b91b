package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"navify-backend/internal/domain/model"
)

// GoogleGeocoder Google Maps Geocoding APIを使用したジオコーダー
// 優先順位2位（キーがある場合）
type GoogleGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleGeocoder 新しいジオコーダーを生成する
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:     apiKey,
		baseURL:    "https://maps.googleapis.com/maps/api/geocode/json",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Name バックエンド識別子を返す
func (g *GoogleGeocoder) Name() string {
	return model.GeocoderGoogle
}

// Available APIキーが設定されている場合のみ試行可能
func (g *GoogleGeocoder) Available() bool {
	return g.apiKey != ""
}

// Geocode 住所を座標へ解決する。countryはcomponentsフィルタとして渡す
func (g *GoogleGeocoder) Geocode(ctx context.Context, address, country string) (*model.GeoLocation, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	if country != "" {
		params.Set("components", "country:"+strings.ToUpper(country))
	}
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if apiResp.Status != "OK" || len(apiResp.Results) == 0 {
		return nil, nil
	}

	r := apiResp.Results[0]
	formatted := r.FormattedAddress
	if formatted == "" {
		formatted = address
	}
	return &model.GeoLocation{
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
		Address: formatted,
	}, nil
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleGeocodeResponse struct {
	Status  string                `json:"status"`
	Results []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress string               `json:"formatted_address"`
	Geometry         googleGeocodeGeometry `json:"geometry"`
}

type googleGeocodeGeometry struct {
	Location model.LatLng `json:"location"`
}
