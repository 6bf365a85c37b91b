package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"navify-backend/internal/domain/model"
)

// OSRMProvider OSRM (Open Source Routing Machine) を使用した経路検索の実装
// 全世界対応・APIキー不要のため、チェーンの最優先に置く
type OSRMProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMProvider 新しいプロバイダを生成する
func NewOSRMProvider() *OSRMProvider {
	return &OSRMProvider{
		baseURL:    "https://router.project-osrm.org",
		httpClient: &http.Client{Timeout: 3 * time.Second},
	}
}

// NewOSRMProviderWithBaseURL テスト用にベースURLを差し替えてプロバイダを生成する
func NewOSRMProviderWithBaseURL(baseURL string) *OSRMProvider {
	return &OSRMProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 3 * time.Second},
	}
}

// Name プロバイダ識別子を返す
func (p *OSRMProvider) Name() string {
	return model.ProviderOSRM
}

// Available APIキー不要なので常に試行可能
func (p *OSRMProvider) Available() bool {
	return true
}

// ComputeRoutes OSRM APIを呼び出して運転経路を取得し、正規化して返す
func (p *OSRMProvider) ComputeRoutes(ctx context.Context, origin, dest *model.GeoLocation) ([]model.Route, error) {
	// OSRMは lng,lat の順
	coordinates := fmt.Sprintf("%f,%f;%f,%f", origin.Lng, origin.Lat, dest.Lng, dest.Lat)
	params := url.Values{}
	params.Set("overview", "full")
	params.Set("steps", "true")
	params.Set("geometries", "geojson")
	params.Set("continue_straight", "default")
	reqURL := fmt.Sprintf("%s/route/v1/driving/%s?%s", p.baseURL, coordinates, params.Encode())

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

	var apiResp osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("%w: osrm returned no routes", model.ErrProviderUnavailable)
	}

	routes := make([]model.Route, 0, len(apiResp.Routes))
	for idx, r := range apiResp.Routes {
		distanceKm := r.Distance / 1000
		durationMin := RoundSecondsToMinutes(r.Duration)

		// 複数レグのステップを1本の順序付きリストに平坦化する
		var steps []model.Step
		summaries := make([]string, 0, len(r.Legs))
		for _, leg := range r.Legs {
			summaries = append(summaries, leg.Summary)
			for _, s := range leg.Steps {
				instruction := s.Maneuver.Instruction
				if instruction == "" {
					instruction = s.Name
				}
				if instruction == "" {
					instruction = "Continue"
				}
				steps = append(steps, model.Step{
					Instruction: instruction,
					Distance:    FormatStepDistanceMeters(s.Distance),
					Duration:    FormatDurationMin(RoundSecondsToMinutes(s.Duration)),
					Name:        s.Name,
				})
			}
		}

		routes = append(routes, model.Route{
			ID:             NewRouteID(),
			Name:           RouteName(idx),
			Summary:        fmt.Sprintf("Driving via %s", strings.Join(summaries, " - ")),
			DistanceKm:     distanceKm,
			DistanceText:   FormatDistanceKm(distanceKm),
			EtaMin:         durationMin,
			DurationText:   FormatDurationMin(durationMin),
			Steps:          steps,
			Geometry:       EnsureGeometry(r.Geometry, origin, dest),
			OriginLocation: origin,
			DestLocation:   dest,
			Provider:       model.ProviderOSRM,
		})
	}

	return routes, nil
}

// --- OSRM APIのレスポンスをパースするための構造体 ---

type osrmRouteResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64           `json:"distance"` // meters
	Duration float64           `json:"duration"` // seconds
	Geometry *geojson.Geometry `json:"geometry"`
	Legs     []osrmLeg         `json:"legs"`
}

type osrmLeg struct {
	Summary string     `json:"summary"`
	Steps   []osrmStep `json:"steps"`
}

type osrmStep struct {
	Name     string       `json:"name"`
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmManeuver struct {
	Instruction string `json:"instruction"`
}
