package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb/geojson"

	"navify-backend/internal/domain/model"
)

// GeoapifyRoutingProvider Geoapify Routing APIを使用した経路検索の実装
type GeoapifyRoutingProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGeoapifyRoutingProvider 新しいプロバイダを生成する
func NewGeoapifyRoutingProvider(apiKey string) *GeoapifyRoutingProvider {
	return &GeoapifyRoutingProvider{
		apiKey:     apiKey,
		baseURL:    "https://api.geoapify.com/v1/routing",
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// Name プロバイダ識別子を返す
func (p *GeoapifyRoutingProvider) Name() string {
	return model.ProviderGeoapify
}

// Available APIキーが設定されている場合のみ試行可能
func (p *GeoapifyRoutingProvider) Available() bool {
	return p.apiKey != ""
}

// ComputeRoutes Geoapify Routing APIを呼び出して運転経路を取得し、正規化して返す
func (p *GeoapifyRoutingProvider) ComputeRoutes(ctx context.Context, origin, dest *model.GeoLocation) ([]model.Route, error) {
	params := url.Values{}
	params.Set("waypoints", fmt.Sprintf("%f,%f|%f,%f", origin.Lat, origin.Lng, dest.Lat, dest.Lng))
	params.Set("mode", "drive")
	params.Set("apiKey", p.apiKey)
	params.Set("details", "instruction_details")
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

	var apiResp geoapifyRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(apiResp.Features) == 0 {
		return nil, fmt.Errorf("%w: geoapify returned no routes", model.ErrProviderUnavailable)
	}

	routes := make([]model.Route, 0, len(apiResp.Features))
	for idx, f := range apiResp.Features {
		distanceKm := f.Properties.Distance / 1000
		durationMin := RoundSecondsToMinutes(f.Properties.Time)

		var steps []model.Step
		for _, leg := range f.Properties.Legs {
			for _, s := range leg.Steps {
				instruction := s.Instruction.Text
				if instruction == "" {
					instruction = "Continue"
				}
				steps = append(steps, model.Step{
					Instruction: instruction,
					Distance:    FormatStepDistanceMeters(s.Distance),
					Duration:    FormatDurationMin(RoundSecondsToMinutes(s.Time)),
				})
			}
		}

		summary := f.Properties.Mode
		if summary == "" {
			summary = "Driving route"
		}

		routes = append(routes, model.Route{
			ID:             NewRouteID(),
			Name:           RouteName(idx),
			Summary:        summary,
			DistanceKm:     distanceKm,
			DistanceText:   FormatDistanceKm(distanceKm),
			EtaMin:         durationMin,
			DurationText:   FormatDurationMin(durationMin),
			Steps:          steps,
			Geometry:       EnsureGeometry(f.Geometry, origin, dest),
			OriginLocation: origin,
			DestLocation:   dest,
			Provider:       model.ProviderGeoapify,
		})
	}

	return routes, nil
}

// --- Geoapify APIのレスポンスをパースするための構造体 ---

type geoapifyRouteResponse struct {
	Features []geoapifyFeature `json:"features"`
}

type geoapifyFeature struct {
	Properties geoapifyProperties `json:"properties"`
	Geometry   *geojson.Geometry  `json:"geometry"`
}

type geoapifyProperties struct {
	Mode     string        `json:"mode"`
	Distance float64       `json:"distance"` // meters
	Time     float64       `json:"time"`     // seconds
	Legs     []geoapifyLeg `json:"legs"`
}

type geoapifyLeg struct {
	Steps []geoapifyStep `json:"steps"`
}

type geoapifyStep struct {
	Distance    float64             `json:"distance"`
	Time        float64             `json:"time"`
	Instruction geoapifyInstruction `json:"instruction"`
}

type geoapifyInstruction struct {
	Text string `json:"text"`
}
