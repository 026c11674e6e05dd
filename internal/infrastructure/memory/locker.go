package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/lock"
)

// KeyedLocker はキー単位のプロセス内排他ロック
// 単一プロセス構成でRedisなしにボート単位の排他を実現する
type KeyedLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewKeyedLocker は新しいKeyedLockerを作成する
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{slots: make(map[string]chan struct{})}
}

func (l *KeyedLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// Acquire はロックを取得する（取得できない場合は即座にErrNotAcquired）
// ttlはRedis実装との互換のために受け取るが、プロセス内ロックでは失効しない
func (l *KeyedLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (lock.Lock, error) {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		return &keyedLock{ch: ch}, nil
	default:
		return nil, lock.ErrNotAcquired
	}
}

// AcquireWithRetry はリトライ付きでロックを取得する
func (l *KeyedLocker) AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (lock.Lock, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lk, err := l.Acquire(ctx, key, ttl)
		if err == nil {
			return lk, nil
		}
		lastErr = err
		if !errors.Is(err, lock.ErrNotAcquired) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, lastErr
}

type keyedLock struct {
	ch   chan struct{}
	once sync.Once
}

// Release はロックを解放する（二重解放は無視）
func (k *keyedLock) Release(ctx context.Context) error {
	k.once.Do(func() { <-k.ch })
	return nil
}

// Extend はプロセス内ロックでは何もしない（失効しないため）
func (k *keyedLock) Extend(ctx context.Context, ttl time.Duration) error {
	return nil
}

var _ lock.Manager = (*KeyedLocker)(nil)
