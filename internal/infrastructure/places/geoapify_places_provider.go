package places

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

// GeoapifyPlacesProvider Geoapify Places APIを使用したスポット検索の実装
type GeoapifyPlacesProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGeoapifyPlacesProvider 新しいプロバイダを生成する
func NewGeoapifyPlacesProvider(apiKey string) *GeoapifyPlacesProvider {
	return &GeoapifyPlacesProvider{
		apiKey:     apiKey,
		baseURL:    "https://api.geoapify.com/v2/places",
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// Name プロバイダ識別子を返す
func (p *GeoapifyPlacesProvider) Name() string {
	return model.ProviderGeoapify
}

// Available APIキーが設定されている場合のみ試行可能
func (p *GeoapifyPlacesProvider) Available() bool {
	return p.apiKey != ""
}

// Search 検索語にマッチする場所を取得する
func (p *GeoapifyPlacesProvider) Search(ctx context.Context, query, country string, limit int) ([]model.Place, error) {
	params := url.Values{}
	params.Set("apiKey", p.apiKey)
	params.Set("text", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("format", "json")
	if country != "" {
		params.Set("filter", "countrycode:"+country)
	}
	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp geoapifyPlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	places := make([]model.Place, 0, len(apiResp.Features))
	for _, f := range apiResp.Features {
		place := model.Place{
			ID:      f.Properties.PlaceID,
			Name:    f.Properties.Name,
			Address: f.Properties.Formatted,
		}
		if place.Name == "" {
			place.Name = f.Properties.Formatted
		}
		if len(f.Properties.Categories) > 0 {
			place.Category = f.Properties.Categories[0]
		}
		if len(f.Geometry.Coordinates) >= 2 {
			lng := f.Geometry.Coordinates[0]
			lat := f.Geometry.Coordinates[1]
			place.Lat = &lat
			place.Lng = &lng
		}
		places = append(places, place)
	}

	return places, nil
}

// --- Geoapify APIのレスポンスをパースするための構造体 ---

type geoapifyPlacesResponse struct {
	Features []geoapifyPlaceFeature `json:"features"`
}

type geoapifyPlaceFeature struct {
	Properties geoapifyPlaceProperties `json:"properties"`
	Geometry   geoapifyPlaceGeometry   `json:"geometry"`
}

type geoapifyPlaceProperties struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Formatted  string   `json:"formatted"`
	Categories []string `json:"categories"`
}

type geoapifyPlaceGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
}
