package service

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
)

// latLngPattern "lat,lng" 形式の厳密なパターン（例: "37.7749,-122.4194"）
// 曖昧・不正な文字列はマッチさせず、ジオコーディングへフォールスルーさせる
var latLngPattern = regexp.MustCompile(`^-?\d+\.?\d*,-?\d+\.?\d*$`)

// LocationResolver 自由テキストまたは"lat,lng"入力を座標へ解決する
type LocationResolver interface {
	// Resolve 解決できない場合は(nil, nil)を返す（エラーにしない）
	Resolve(ctx context.Context, input, country string) (*model.GeoLocation, error)
}

// locationResolverImpl 優先順に並んだジオコーディングバックエンドのチェーン
type locationResolverImpl struct {
	geocoders []repository.Geocoder
}

// NewLocationResolver 新しいLocationResolverインスタンスを作成
// geocodersは優先順（先頭が最優先）で渡す
func NewLocationResolver(geocoders ...repository.Geocoder) LocationResolver {
	return &locationResolverImpl{geocoders: geocoders}
}

// Resolve まず構文チェック（ネットワーク呼び出しなしの直接パース）、
// ダメならバックエンドを優先順に試し、最初の非nil結果を返す
func (r *locationResolverImpl) Resolve(ctx context.Context, input, country string) (*model.GeoLocation, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if parsed := ParseLatLng(input); parsed != nil {
		return parsed, nil
	}

	country = normalizeCountry(country)
	for _, g := range r.geocoders {
		if !g.Available() {
			continue
		}
		loc, err := g.Geocode(ctx, input, country)
		if err != nil {
			// タイムアウトや個別バックエンドの失敗は「結果なし」として扱い、次へ進む
			log.Printf("⚠️ ジオコーディング失敗 (%s): %v", g.Name(), err)
			continue
		}
		if loc != nil {
			return loc, nil
		}
	}
	return nil, nil
}

// ParseLatLng "lat,lng"形式の入力を直接パースする。マッチしない場合はnil
func ParseLatLng(input string) *model.GeoLocation {
	if !latLngPattern.MatchString(input) {
		return nil
	}
	parts := strings.SplitN(input, ",", 2)
	lat, err1 := strconv.ParseFloat(parts[0], 64)
	lng, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &model.GeoLocation{Lat: lat, Lng: lng, Address: input}
}

// normalizeCountry 有効な2文字コードのみを小文字で返す。それ以外は空文字
func normalizeCountry(country string) string {
	country = strings.TrimSpace(country)
	if len(country) != 2 {
		return ""
	}
	for _, c := range country {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return ""
		}
	}
	return strings.ToLower(country)
}
