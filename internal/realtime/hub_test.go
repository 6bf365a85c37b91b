package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navify-backend/internal/domain/model"
)

func TestHub_Broadcast(t *testing.T) {
	t.Run("配信されたスナップショットがLatestで取れる", func(t *testing.T) {
		hub := NewHub()
		go hub.Run()

		snapshot := model.NewTrafficSnapshot([]model.TrafficArea{
			{ID: "a1", Name: "City Center", Congestion: 65},
		})
		hub.Broadcast(snapshot)

		require.Eventually(t, func() bool {
			return hub.Latest() != nil
		}, time.Second, 10*time.Millisecond)

		latest := hub.Latest()
		require.Len(t, latest.Areas, 1)
		assert.Equal(t, "City Center", latest.Areas[0].Name)
	})

	t.Run("未配信ならLatestはnil", func(t *testing.T) {
		hub := NewHub()
		assert.Nil(t, hub.Latest())
	})

	t.Run("nilスナップショットは無視される", func(t *testing.T) {
		hub := NewHub()
		go hub.Run()

		hub.Broadcast(nil)
		time.Sleep(50 * time.Millisecond)
		assert.Nil(t, hub.Latest())
	})

	t.Run("連続配信では最新が残る", func(t *testing.T) {
		hub := NewHub()
		go hub.Run()

		for i := 1; i <= 5; i++ {
			hub.Broadcast(model.NewTrafficSnapshot([]model.TrafficArea{
				{ID: "a1", Name: "City Center", Congestion: i * 10},
			}))
		}

		require.Eventually(t, func() bool {
			latest := hub.Latest()
			return latest != nil && latest.Areas[0].Congestion == 50
		}, time.Second, 10*time.Millisecond)
	})
}
