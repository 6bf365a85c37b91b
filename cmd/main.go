package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"navify-backend/internal/database"
	"navify-backend/internal/domain/repository"
	"navify-backend/internal/domain/service"
	"navify-backend/internal/handler"
	infraDB "navify-backend/internal/infrastructure/database"
	"navify-backend/internal/infrastructure/firestore"
	"navify-backend/internal/infrastructure/geocode"
	"navify-backend/internal/infrastructure/maps"
	"navify-backend/internal/infrastructure/places"
	"navify-backend/internal/realtime"
	repoImpl "navify-backend/internal/repository"
	"navify-backend/internal/scheduler"
	"navify-backend/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	ctx := context.Background()

	// 渋滞エリアストアの選択: Supabase → PostgreSQL直接 → インメモリ の順で試す
	areasRepo, supabaseClient := setupTrafficAreasStore()

	// 保存済み経路・停留所はSupabaseが使える場合のみ有効
	var savedRoutesRepo repository.SavedRoutesRepository
	var transitStopsRepo repository.TransitStopsRepository
	if supabaseClient != nil {
		savedRoutesRepo = repoImpl.NewSupabaseSavedRoutesRepository(supabaseClient)
		transitStopsRepo = repoImpl.NewSupabaseTransitStopsRepository(supabaseClient)
	}

	// トリップ記録はFirestoreが使える場合のみ有効
	var tripLogsRepo repository.TripLogsRepository
	if projectID := os.Getenv("FIRESTORE_PROJECT_ID"); projectID != "" {
		firestoreClient, err := firestore.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Printf("⚠️ Firestore初期化失敗、トリップ記録は無効: %v", err)
		} else {
			defer firestoreClient.Close()
			tripLogsRepo = repoImpl.NewFirestoreTripLogsRepository(firestoreClient)
		}
	}

	geoapifyKey := os.Getenv("GEOAPIFY_API_KEY")
	googleKey := os.Getenv("GOOGLE_MAPS_API_KEY")

	// ジオコーディングチェーン（Geoapify → Google → Nominatim）
	resolver := service.NewLocationResolver(
		geocode.NewGeoapifyGeocoder(geoapifyKey),
		geocode.NewGoogleGeocoder(googleKey),
		geocode.NewNominatimGeocoder(),
	)

	// 経路プロバイダチェーン（OSRM → Geoapify → Google → ローカルフォールバック）
	routeChain := service.NewRouteChainService(
		resolver,
		maps.NewOSRMProvider(),
		maps.NewGeoapifyRoutingProvider(geoapifyKey),
		maps.NewGoogleDirectionsProvider(googleKey),
		maps.NewHaversineFallbackProvider(areasRepo),
	)

	// ping受信と集約パイプライン
	ingestor := service.NewPingIngestor()
	aggregator := service.NewTrafficAggregator(ingestor, areasRepo)

	// ユースケース
	trafficUseCase := usecase.NewTrafficUseCase(ingestor, areasRepo)
	routeUseCase := usecase.NewRouteDirectionsUseCase(routeChain, resolver, savedRoutesRepo)
	placesUseCase := usecase.NewPlacesUseCase(
		places.NewGeoapifyPlacesProvider(geoapifyKey),
		places.NewNominatimPlacesProvider(),
	)
	transitUseCase := usecase.NewTransitUseCase(
		places.NewGoogleTransitProvider(googleKey),
		transitStopsRepo,
		areasRepo,
	)
	tripsUseCase := usecase.NewTripsUseCase(tripLogsRepo)

	// WebSocketハブとブロードキャストスケジューラ
	hub := realtime.NewHub()
	go hub.Run()

	broadcastScheduler := scheduler.NewBroadcastScheduler(aggregator, areasRepo, hub, broadcastInterval())
	go broadcastScheduler.Start(ctx)

	// ハンドラー
	trafficHandler := handler.NewTrafficHandler(trafficUseCase)
	routeHandler := handler.NewRouteHandler(routeUseCase)
	geocodeHandler := handler.NewGeocodeHandler(routeUseCase)
	placesHandler := handler.NewPlacesHandler(placesUseCase)
	transitHandler := handler.NewTransitHandler(transitUseCase)
	tripsHandler := handler.NewTripsHandler(tripsUseCase)
	realtimeHandler := handler.NewRealtimeHandler(hub)

	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "navify-backend"})
	})

	api := router.Group("/api")
	{
		traffic := api.Group("/traffic")
		{
			traffic.GET("", trafficHandler.GetTraffic)
			traffic.POST("/ping", trafficHandler.PostPing)
			traffic.PUT("/bulk", trafficHandler.BulkUpdate)
			traffic.GET("/stream", realtimeHandler.Stream)
			traffic.GET("/areas/:id", trafficHandler.GetArea)
			traffic.POST("/areas", trafficHandler.CreateArea)
			traffic.PUT("/areas/:id", trafficHandler.UpdateArea)
			traffic.DELETE("/areas/:id", trafficHandler.DeleteArea)
		}

		routes := api.Group("/routes")
		{
			routes.GET("", routeHandler.GetRoutes)
			routes.POST("/saved", routeHandler.SaveRoute)
			routes.GET("/saved", routeHandler.GetSavedRoutes)
			routes.DELETE("/saved/:id", routeHandler.DeleteSavedRoute)
		}

		api.GET("/geocode", geocodeHandler.Geocode)
		api.GET("/places", placesHandler.Search)
		api.GET("/transit", transitHandler.GetTransit)

		api.POST("/trips", tripsHandler.RecordTrip)
		api.GET("/trips", tripsHandler.GetTrips)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 navify-backend server starting on :%s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("サーバー起動失敗: %v", err)
	}
}

// setupTrafficAreasStore 利用可能な永続化バックエンドを順に試す
// どれも使えない場合はデモ用のシード入りインメモリストアに落ちる
func setupTrafficAreasStore() (repository.TrafficAreasRepository, *database.SupabaseClient) {
	if os.Getenv("SUPABASE_URL") != "" && os.Getenv("SUPABASE_ANON_KEY") != "" {
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			log.Printf("⚠️ Supabaseクライアント初期化失敗: %v", err)
		} else if err := supabaseClient.HealthCheck(); err != nil {
			log.Printf("⚠️ Supabaseヘルスチェック失敗: %v", err)
		} else {
			log.Println("✅ Supabase接続成功、PostgRESTストアを使用します")
			return repoImpl.NewSupabaseTrafficAreasRepository(supabaseClient), supabaseClient
		}
	}

	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		pgClient, err := infraDB.NewPostgreSQLClient()
		if err != nil {
			log.Printf("⚠️ PostgreSQL直接接続失敗: %v", err)
		} else {
			log.Println("✅ PostgreSQL接続成功、直接接続ストアを使用します")
			return repoImpl.NewPostgresTrafficAreasRepository(pgClient), nil
		}
	}

	log.Println("⚠️ 外部ストアが未設定のため、シード入りインメモリストアを使用します")
	return repoImpl.NewSeededMemoryTrafficAreasRepository(), nil
}

// broadcastInterval 環境変数からブロードキャスト周期を読む（秒指定）
func broadcastInterval() time.Duration {
	if v := os.Getenv("BROADCAST_INTERVAL_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		log.Printf("⚠️ BROADCAST_INTERVAL_SECONDSの値が不正なため既定値を使用します")
	}
	return 0
}
