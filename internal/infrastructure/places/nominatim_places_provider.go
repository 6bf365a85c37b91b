package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"navify-backend/internal/domain/model"
)

// NominatimPlacesProvider OpenStreetMap Nominatimを使用したスポット検索の実装
// APIキー不要のフォールバック
type NominatimPlacesProvider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimPlacesProvider 新しいプロバイダを生成する
func NewNominatimPlacesProvider() *NominatimPlacesProvider {
	return &NominatimPlacesProvider{
		baseURL:    "https://nominatim.openstreetmap.org/search",
		userAgent:  "NavifyApp/1.0",
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// Name プロバイダ識別子を返す
func (p *NominatimPlacesProvider) Name() string {
	return model.GeocoderNominatim
}

// Available キー不要なので常に試行可能
func (p *NominatimPlacesProvider) Available() bool {
	return true
}

// Search 検索語にマッチする場所を取得する
func (p *NominatimPlacesProvider) Search(ctx context.Context, query, country string, limit int) ([]model.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(limit))
	if country != "" {
		params.Set("countrycodes", country)
	}
	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var results []nominatimPlaceResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	places := make([]model.Place, 0, len(results))
	for _, r := range results {
		name := r.DisplayName
		if idx := strings.Index(name, ","); idx > 0 {
			name = name[:idx]
		}
		place := model.Place{
			ID:       strconv.FormatInt(r.PlaceID, 10),
			Name:     name,
			Category: r.Type,
			Address:  r.DisplayName,
		}
		if lat, err := strconv.ParseFloat(r.Lat, 64); err == nil {
			if lng, err := strconv.ParseFloat(r.Lon, 64); err == nil {
				place.Lat = &lat
				place.Lng = &lng
			}
		}
		places = append(places, place)
	}

	return places, nil
}

// --- Nominatim APIのレスポンスをパースするための構造体 ---

type nominatimPlaceResult struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}
