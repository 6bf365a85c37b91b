package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"navify-backend/internal/domain/helper"
	"navify-backend/internal/domain/model"
)

// GoogleDirectionsProvider Google Maps Directions APIを使用した経路検索の実装
type GoogleDirectionsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleDirectionsProvider 新しいプロバイダを生成する
func NewGoogleDirectionsProvider(apiKey string) *GoogleDirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		baseURL:    "https://maps.googleapis.com/maps/api/directions/json",
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// NewGoogleDirectionsProviderWithBaseURL テスト用にベースURLを差し替えてプロバイダを生成する
func NewGoogleDirectionsProviderWithBaseURL(apiKey, baseURL string) *GoogleDirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// Name プロバイダ識別子を返す
func (g *GoogleDirectionsProvider) Name() string {
	return model.ProviderGoogle
}

// Available APIキーが設定されている場合のみ試行可能
func (g *GoogleDirectionsProvider) Available() bool {
	return g.apiKey != ""
}

// ComputeRoutes Google Maps Directions APIを呼び出して運転経路を取得し、正規化して返す
func (g *GoogleDirectionsProvider) ComputeRoutes(ctx context.Context, origin, dest *model.GeoLocation) ([]model.Route, error) {
	reqURL := g.buildURL(origin, dest)

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

	var apiResp googleRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if apiResp.Status != "OK" || len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("%w: google status=%s", model.ErrProviderUnavailable, apiResp.Status)
	}

	routes := make([]model.Route, 0, len(apiResp.Routes))
	for idx, r := range apiResp.Routes {
		if len(r.Legs) == 0 {
			continue
		}
		leg := r.Legs[0]
		distanceKm := float64(leg.Distance.Value) / 1000
		durationMin := RoundSecondsToMinutes(float64(leg.Duration.Value))

		steps := make([]model.Step, 0, len(leg.Steps))
		coords := make([][]float64, 0, len(leg.Steps)+1)
		for _, s := range leg.Steps {
			steps = append(steps, model.Step{
				Instruction: StripHTMLTags(s.HTMLInstructions),
				Distance:    s.Distance.Text,
				Duration:    s.Duration.Text,
			})
			coords = append(coords, []float64{s.StartLocation.Lng, s.StartLocation.Lat})
		}
		coords = append(coords, []float64{leg.EndLocation.Lng, leg.EndLocation.Lat})

		// ステップの始点列から粗い折れ線を組み立てる。取れない場合は直線で補完
		geometry := helper.LineStringGeometry(coords)
		if geometry == nil {
			geometry = EnsureGeometry(nil, origin, dest)
		}

		name := model.RouteNameFastest
		if idx > 0 {
			name = fmt.Sprintf("Alternative %d", idx)
		}
		summary := r.Summary
		if summary == "" {
			summary = "Route"
		}

		routes = append(routes, model.Route{
			ID:             NewRouteID(),
			Name:           name,
			Summary:        summary,
			DistanceKm:     distanceKm,
			DistanceText:   leg.Distance.Text,
			EtaMin:         durationMin,
			DurationText:   leg.Duration.Text,
			Steps:          steps,
			Geometry:       geometry,
			OriginLocation: origin,
			DestLocation:   dest,
			Provider:       model.ProviderGoogle,
		})
	}

	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: google returned no usable routes", model.ErrProviderUnavailable)
	}

	return routes, nil
}

func (g *GoogleDirectionsProvider) buildURL(origin, dest *model.GeoLocation) string {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	params.Set("alternatives", "true")
	params.Set("units", "metric")
	params.Set("key", g.apiKey)
	return fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleRouteResponse struct {
	Routes       []googleRoute `json:"routes"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type googleRoute struct {
	Summary string      `json:"summary"`
	Legs    []googleLeg `json:"legs"`
}

type googleLeg struct {
	Distance    googleTextValue `json:"distance"`
	Duration    googleTextValue `json:"duration"`
	Steps       []googleStep    `json:"steps"`
	EndLocation googleLatLng    `json:"end_location"`
}

type googleStep struct {
	HTMLInstructions string          `json:"html_instructions"`
	Distance         googleTextValue `json:"distance"`
	Duration         googleTextValue `json:"duration"`
	StartLocation    googleLatLng    `json:"start_location"`
}

type googleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleTextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}
