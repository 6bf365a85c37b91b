package service

import (
	"sync"
	"time"

	"navify-backend/internal/domain/model"
)

// PingIngestor GPS pingの短期保持バッファ
// リクエストハンドラー（Ingest）とスケジューラ（Prune/Snapshot）の両方から
// アクセスされる唯一の共有可変状態なので、mutexで直列化する
type PingIngestor struct {
	mu             sync.Mutex
	buffer         []model.Ping
	retentionMilli int64
	now            func() int64 // テストで差し替え可能な現在時刻（UNIXミリ秒）
}

// NewPingIngestor 新しいPingIngestorを作成する
func NewPingIngestor() *PingIngestor {
	return &PingIngestor{
		retentionMilli: model.PingRetentionMillis,
		now:            func() int64 { return time.Now().UnixMilli() },
	}
}

// NewPingIngestorWithClock テスト用に時刻関数を注入してPingIngestorを作成する
func NewPingIngestorWithClock(now func() int64) *PingIngestor {
	return &PingIngestor{
		retentionMilli: model.PingRetentionMillis,
		now:            now,
	}
}

// Ingest pingを検証してバッファ末尾に追加する
// lat/lngが欠落している場合はErrInvalidInputを返す
// タイムスタンプ省略時は現在時刻を使う
func (pi *PingIngestor) Ingest(req *model.PingRequest) error {
	if req == nil || req.Lat == nil || req.Lng == nil {
		return model.ErrInvalidInput
	}

	ping := model.Ping{
		Lat:   *req.Lat,
		Lng:   *req.Lng,
		Speed: req.Speed,
	}
	if req.Ts != nil && *req.Ts > 0 {
		ping.Ts = *req.Ts
	} else {
		ping.Ts = pi.now()
	}

	pi.mu.Lock()
	defer pi.mu.Unlock()
	pi.buffer = append(pi.buffer, ping)
	pi.pruneLocked()
	return nil
}

// Prune 保持ウィンドウ（2分）より古いエントリを削除する
func (pi *PingIngestor) Prune() {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	pi.pruneLocked()
}

// pruneLocked バッファは到着順（≒古い順）なので先頭からのトリムで済む
// クライアントが古いtsを付けて順序が崩れた場合に備え、先頭が新しくても全走査で取りこぼしを拾う
func (pi *PingIngestor) pruneLocked() {
	cutoff := pi.now() - pi.retentionMilli

	i := 0
	for i < len(pi.buffer) && pi.buffer[i].Ts < cutoff {
		i++
	}
	if i > 0 {
		pi.buffer = append([]model.Ping(nil), pi.buffer[i:]...)
	}

	// 順序が崩れていた場合のフォールバック
	for j := 0; j < len(pi.buffer); j++ {
		if pi.buffer[j].Ts < cutoff {
			kept := pi.buffer[:0]
			for _, p := range pi.buffer {
				if p.Ts >= cutoff {
					kept = append(kept, p)
				}
			}
			pi.buffer = kept
			break
		}
	}
}

// Snapshot 現在のバッファ内容のコピーを返す（読み取り専用ビュー）
func (pi *PingIngestor) Snapshot() []model.Ping {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	out := make([]model.Ping, len(pi.buffer))
	copy(out, pi.buffer)
	return out
}

// Len 現在のバッファ長を返す
func (pi *PingIngestor) Len() int {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	return len(pi.buffer)
}
