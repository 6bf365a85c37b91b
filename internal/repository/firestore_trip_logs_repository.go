package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"navify-backend/internal/domain/model"
	"navify-backend/internal/domain/repository"
	"navify-backend/internal/infrastructure/firestore"
)

const (
	tripLogsCollection = "trip_logs"
	tripLogTTLDays     = 30
)

// FirestoreTripLogsRepository Firestoreを使用したトリップ記録リポジトリ
// ドキュメントはexpireAtフィールドのTTLポリシーで自動削除される
type FirestoreTripLogsRepository struct {
	client *firestore.FirestoreClient
}

// NewFirestoreTripLogsRepository 新しいインスタンスを作成
func NewFirestoreTripLogsRepository(client *firestore.FirestoreClient) repository.TripLogsRepository {
	return &FirestoreTripLogsRepository{
		client: client,
	}
}

// Create トリップ記録を保存する（IDはUUIDで採番）
func (r *FirestoreTripLogsRepository) Create(ctx context.Context, trip *model.TripLog) (*model.TripLog, error) {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}

	doc := trip.ToFirestoreTripLog(tripLogTTLDays)

	_, err := r.client.GetClient().Collection(tripLogsCollection).Doc(trip.ID).Set(ctx, doc)
	if err != nil {
		log.Printf("❌ トリップ記録の保存に失敗: %v", err)
		return nil, fmt.Errorf("トリップ記録の保存失敗: %w", err)
	}

	log.Printf("✅ トリップ記録を保存しました (ID: %s)", trip.ID)
	return trip, nil
}

// GetByUserID 指定ユーザーのトリップ記録一覧を取得する
func (r *FirestoreTripLogsRepository) GetByUserID(ctx context.Context, userID string) ([]model.TripLog, error) {
	iter := r.client.GetClient().Collection(tripLogsCollection).
		Where("user_id", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var trips []model.TripLog
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("トリップ記録の取得失敗: %w", err)
		}

		var doc model.FirestoreTripLog
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("⚠️ トリップ記録のデコードに失敗 (ID: %s): %v", snap.Ref.ID, err)
			continue
		}
		trips = append(trips, *doc.ToTripLog(snap.Ref.ID))
	}

	return trips, nil
}
