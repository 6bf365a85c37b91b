package model

import "errors"

// エラー分類（ハンドラー層でHTTPステータスへ変換される）
var (
	// ErrInvalidInput 不正なpingまたはリクエストペイロード（400相当、再試行しない）
	ErrInvalidInput = errors.New("invalid input")

	// ErrAddressNotFound どのジオコーディングバックエンドでも解決できなかった（4xx相当）
	ErrAddressNotFound = errors.New("address not found")

	// ErrProviderUnavailable 単一バックエンドの失敗（内部専用、チェーンが次へ進むことで常に回復する）
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrPersistenceError 集約またはストア書き込みの失敗（ログのみ、プロセスは落とさない）
	ErrPersistenceError = errors.New("persistence error")

	// ErrNotFound 対象エンティティが存在しない（404相当）
	ErrNotFound = errors.New("not found")
)
