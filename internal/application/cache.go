package application

import (
	"context"
	"time"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/availability"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/logger"
)

// AvailabilityCache は利用不可期間一覧のキャッシュ
// キャッシュの失敗は致命的ではなく、常にリポジトリへフォールバックする
type AvailabilityCache interface {
	GetPeriods(ctx context.Context, boatID string) ([]availability.Period, error)
	SetPeriods(ctx context.Context, boatID string, periods []availability.Period, ttl time.Duration) error
	Invalidate(ctx context.Context, boatID string) error
}

// invalidateCache はキャッシュを無効化する（失敗はログのみ）
func invalidateCache(ctx context.Context, cache AvailabilityCache, boatID string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, boatID); err != nil {
		logger.Warn("キャッシュ無効化に失敗: " + err.Error())
	}
}

// boatLockKey はボート単位ロックのキーを生成する
func boatLockKey(boatID string) string {
	return "boat:" + boatID
}
