package realtime

import (
	"log"
	"sync"

	"navify-backend/internal/domain/model"
)

// Hub 接続中のWebSocketクライアント集合を管理し、渋滞スナップショットを配信する
// 登録・解除・配信は単一のrunループで直列化される
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *model.TrafficSnapshot
	register   chan *Client
	unregister chan *Client

	// latest 最後に配信したスナップショット（新規接続時の初期表示に使う）
	latestMu sync.RWMutex
	latest   *model.TrafficSnapshot
}

// NewHub 新しいHubを作成
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *model.TrafficSnapshot, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run Hubのメインループを開始する（goroutineで呼ぶこと）
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("✅ WebSocketクライアント接続 (合計: %d)", len(h.clients))

			// 次のティックを待たせず、接続直後に最新スナップショットを送る
			if snapshot := h.Latest(); snapshot != nil {
				select {
				case client.send <- snapshot:
				default:
				}
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			log.Printf("👋 WebSocketクライアント切断 (合計: %d)", len(h.clients))

		case snapshot := <-h.broadcast:
			h.setLatest(snapshot)
			for client := range h.clients {
				select {
				case client.send <- snapshot:
				default:
					// 送信バッファが詰まったクライアントは切り離す
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast スナップショットを全クライアントへ配信する（ノンブロッキング）
// Hubが追いついていない場合は古い配信を1件落として最新を優先する
func (h *Hub) Broadcast(snapshot *model.TrafficSnapshot) {
	if snapshot == nil {
		return
	}
	select {
	case h.broadcast <- snapshot:
	default:
		select {
		case <-h.broadcast:
		default:
		}
		select {
		case h.broadcast <- snapshot:
		default:
		}
	}
}

// Latest 最後に配信したスナップショットを返す（未配信ならnil）
func (h *Hub) Latest() *model.TrafficSnapshot {
	h.latestMu.RLock()
	defer h.latestMu.RUnlock()
	return h.latest
}

func (h *Hub) setLatest(snapshot *model.TrafficSnapshot) {
	h.latestMu.Lock()
	defer h.latestMu.Unlock()
	h.latest = snapshot
}
