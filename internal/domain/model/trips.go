package model

import "time"

// TripLog 完了したトリップの記録（匿名投稿も許可）
type TripLog struct {
	ID          string   `json:"id"`
	UserID      *string  `json:"user_id,omitempty"`
	OriginLat   *float64 `json:"origin_lat"`
	OriginLng   *float64 `json:"origin_lng"`
	DestLat     *float64 `json:"dest_lat"`
	DestLng     *float64 `json:"dest_lng"`
	StartTs     *int64   `json:"start_ts"`
	EndTs       *int64   `json:"end_ts"`
	DurationSec *int     `json:"duration_sec"`
	DistanceKm  *float64 `json:"distance_km"`
	Anonymized  bool     `json:"anonymized"`
	Meta        string   `json:"meta,omitempty"`
}

// FirestoreTripLog Firestore保存用のトリップドキュメント（TTL付き）
type FirestoreTripLog struct {
	UserID      *string   `firestore:"user_id"`
	OriginLat   *float64  `firestore:"origin_lat"`
	OriginLng   *float64  `firestore:"origin_lng"`
	DestLat     *float64  `firestore:"dest_lat"`
	DestLng     *float64  `firestore:"dest_lng"`
	StartTs     *int64    `firestore:"start_ts"`
	EndTs       *int64    `firestore:"end_ts"`
	DurationSec *int      `firestore:"duration_sec"`
	DistanceKm  *float64  `firestore:"distance_km"`
	Anonymized  bool      `firestore:"anonymized"`
	Meta        string    `firestore:"meta"`
	ExpireAt    time.Time `firestore:"expireAt"`
}

// ToFirestoreTripLog TripLogをFirestore保存用に変換する
func (t *TripLog) ToFirestoreTripLog(ttlDays int) *FirestoreTripLog {
	return &FirestoreTripLog{
		UserID:      t.UserID,
		OriginLat:   t.OriginLat,
		OriginLng:   t.OriginLng,
		DestLat:     t.DestLat,
		DestLng:     t.DestLng,
		StartTs:     t.StartTs,
		EndTs:       t.EndTs,
		DurationSec: t.DurationSec,
		DistanceKm:  t.DistanceKm,
		Anonymized:  t.Anonymized,
		Meta:        t.Meta,
		ExpireAt:    time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}
}

// ToTripLog FirestoreドキュメントをTripLogに変換する
func (f *FirestoreTripLog) ToTripLog(id string) *TripLog {
	return &TripLog{
		ID:          id,
		UserID:      f.UserID,
		OriginLat:   f.OriginLat,
		OriginLng:   f.OriginLng,
		DestLat:     f.DestLat,
		DestLng:     f.DestLng,
		StartTs:     f.StartTs,
		EndTs:       f.EndTs,
		DurationSec: f.DurationSec,
		DistanceKm:  f.DistanceKm,
		Anonymized:  f.Anonymized,
		Meta:        f.Meta,
	}
}
