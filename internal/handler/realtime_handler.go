package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"navify-backend/internal/realtime"
)

// upgrader HTTP接続をWebSocketへアップグレードする
// デモ用途のためオリジンチェックは行わない
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RealtimeHandler WebSocketによるリアルタイム配信のHTTPハンドラー
type RealtimeHandler struct {
	hub *realtime.Hub
}

// NewRealtimeHandler RealtimeHandlerの新しいインスタンスを作成
func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
	}
}

// Stream GET /api/traffic/stream - WebSocket接続の確立
func (h *RealtimeHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocketアップグレード失敗: %v", err)
		return
	}

	client := realtime.NewClient(h.hub, conn)
	client.Start()
}
