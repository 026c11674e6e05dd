package lock

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotAcquired = errors.New("ロックを取得できませんでした")
	ErrNotOwned    = errors.New("ロックの所有者ではありません")
)

// Lock は取得済みの排他ロックを表す
type Lock interface {
	// Release はロックを解放する
	Release(ctx context.Context) error
	// Extend はロックの有効期限を延長する
	Extend(ctx context.Context, ttl time.Duration) error
}

// Manager はキー単位の排他ロックを管理するインターフェース
// ボートごとの予約・ブロック更新はこのロックの下で行う
type Manager interface {
	// Acquire はロックを取得する（取得できない場合はErrNotAcquired）
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lock, error)
	// AcquireWithRetry はリトライ付きでロックを取得する
	AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (Lock, error)
}
