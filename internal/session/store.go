package session

import "context"

// Store はブラウザセッション単位のキーバリュー保存。
// 値はJSONシリアライズ可能なblobをそのまま持つ。
type Store interface {
	// 見つからない場合は ok=false（エラーにしない）
	Get(ctx context.Context, sessionID string, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, sessionID string, key string, value []byte) error
	Delete(ctx context.Context, sessionID string, key string) error
}
