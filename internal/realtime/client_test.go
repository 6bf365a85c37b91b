package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
)

// newStreamTestServer Hubに接続するWebSocketエンドポイントを立てる
func newStreamTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn).Start()
	}))
	t.Cleanup(server.Close)
	return server
}

func dialStream(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// streamEvent テスト側でデコードするイベントの外形
type streamEvent struct {
	Type string                 `json:"type"`
	Data *model.TrafficSnapshot `json:"data"`
}

func readEvent(t *testing.T, conn *websocket.Conn) streamEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event streamEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestClient_Stream(t *testing.T) {
	t.Run("接続時に最新スナップショットがtrafficイベントとして届く", func(t *testing.T) {
		hub := NewHub()
		go hub.Run()

		hub.Broadcast(model.NewTrafficSnapshot([]model.TrafficArea{
			{ID: "area_city_center", Name: "City Center", Congestion: 65},
		}))
		require.Eventually(t, func() bool {
			return hub.Latest() != nil
		}, time.Second, 10*time.Millisecond)

		server := newStreamTestServer(t, hub)
		conn := dialStream(t, server)

		event := readEvent(t, conn)
		assert.Equal(t, "traffic", event.Type)
		require.NotNil(t, event.Data)
		assert.Positive(t, event.Data.Timestamp)
		require.Len(t, event.Data.Areas, 1)
		assert.Equal(t, "City Center", event.Data.Areas[0].Name)
	})

	t.Run("refreshメッセージで最新スナップショットが再送される", func(t *testing.T) {
		hub := NewHub()
		go hub.Run()

		hub.Broadcast(model.NewTrafficSnapshot([]model.TrafficArea{
			{ID: "area_airport_road", Name: "Airport Road", Congestion: 40},
		}))
		require.Eventually(t, func() bool {
			return hub.Latest() != nil
		}, time.Second, 10*time.Millisecond)

		server := newStreamTestServer(t, hub)
		conn := dialStream(t, server)

		// 接続時の初回配信を読み捨てる
		_ = readEvent(t, conn)

		require.NoError(t, conn.WriteJSON(map[string]string{"type": "refresh"}))

		event := readEvent(t, conn)
		assert.Equal(t, "traffic", event.Type)
		require.NotNil(t, event.Data)
		assert.Equal(t, "Airport Road", event.Data.Areas[0].Name)
	})
}
