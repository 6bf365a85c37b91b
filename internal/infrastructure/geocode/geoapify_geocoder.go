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

// GeoapifyGeocoder Geoapify Geocoding APIを使用したジオコーダー
// 優先順位1位（キーがある場合）
type GeoapifyGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGeoapifyGeocoder 新しいジオコーダーを生成する
func NewGeoapifyGeocoder(apiKey string) *GeoapifyGeocoder {
	return &GeoapifyGeocoder{
		apiKey:     apiKey,
		baseURL:    "https://api.geoapify.com/v1/geocode/search",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Name バックエンド識別子を返す
func (g *GeoapifyGeocoder) Name() string {
	return model.GeocoderGeoapify
}

// Available APIキーが設定されている場合のみ試行可能
func (g *GeoapifyGeocoder) Available() bool {
	return g.apiKey != ""
}

// Geocode 住所を座標へ解決する。countryはcountrycodeフィルタとして渡す
func (g *GeoapifyGeocoder) Geocode(ctx context.Context, address, country string) (*model.GeoLocation, error) {
	params := url.Values{}
	params.Set("text", address)
	params.Set("apiKey", g.apiKey)
	params.Set("limit", strconv.Itoa(1))
	if country != "" {
		params.Set("filter", "countrycode:"+country)
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

	var apiResp geoapifyGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(apiResp.Features) == 0 {
		return nil, nil
	}

	f := apiResp.Features[0]
	if len(f.Geometry.Coordinates) < 2 {
		return nil, nil
	}
	formatted := f.Properties.Formatted
	if formatted == "" {
		formatted = address
	}
	return &model.GeoLocation{
		Lat:     f.Geometry.Coordinates[1],
		Lng:     f.Geometry.Coordinates[0],
		Address: formatted,
	}, nil
}

// --- Geoapify APIのレスポンスをパースするための構造体 ---

type geoapifyGeocodeResponse struct {
	Features []geoapifyGeocodeFeature `json:"features"`
}

type geoapifyGeocodeFeature struct {
	Geometry   geoapifyGeometry         `json:"geometry"`
	Properties geoapifyGeocodeProperties `json:"properties"`
}

type geoapifyGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
}

type geoapifyGeocodeProperties struct {
	Formatted string `json:"formatted"`
}
