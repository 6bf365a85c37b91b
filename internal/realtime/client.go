package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"navify-backend/internal/domain/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// clientMessage クライアントから受け取る制御メッセージ
type clientMessage struct {
	Type string `json:"type"`
}

// trafficEvent ストリームに流すイベントの外形
type trafficEvent struct {
	Type string                 `json:"type"`
	Data *model.TrafficSnapshot `json:"data"`
}

// Client WebSocket接続とHubの仲介役
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan *model.TrafficSnapshot
}

// NewClient 新しいClientを作成
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan *model.TrafficSnapshot, 8),
	}
}

// Start 読み書きのgoroutineを起動してHubに登録する
func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	go c.readPump()
}

// readPump クライアントからの制御メッセージを処理する
// "refresh"を受けたら最新スナップショットを再送する
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "refresh" {
			if snapshot := c.hub.Latest(); snapshot != nil {
				select {
				case c.send <- snapshot:
				default:
				}
			}
		}
	}
}

// writePump Hubからのスナップショットを接続へ書き出す
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case snapshot, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(trafficEvent{Type: "traffic", Data: snapshot}); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
