package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/logger"
)

// BookingCompleter は期間が経過した確定予約を完了にするインターフェース
type BookingCompleter interface {
	CompleteElapsedBookings(ctx context.Context) (int, error)
}

// CompletedBookingMarker は終了日を過ぎた確定予約を完了状態に移すワーカー
// 完了済みの予約も引き続き期間を占有するため、空き状況には影響しない
type CompletedBookingMarker struct {
	bookingService BookingCompleter
	interval       time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewCompletedBookingMarker は新しいマーカーを作成
func NewCompletedBookingMarker(bs BookingCompleter, interval time.Duration) *CompletedBookingMarker {
	return &CompletedBookingMarker{
		bookingService: bs,
		interval:       interval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start はマーカーを開始
func (m *CompletedBookingMarker) Start(ctx context.Context) {
	logger.Info("完了予約マーカー開始", zap.Duration("interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer close(m.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("完了予約マーカー停止（コンテキストキャンセル）")
			return
		case <-m.stopCh:
			logger.Info("完了予約マーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			m.mark(ctx)
		}
	}
}

// Stop はマーカーを停止
func (m *CompletedBookingMarker) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

// mark は経過した確定予約を完了にする
func (m *CompletedBookingMarker) mark(ctx context.Context) {
	log := logger.Get()
	log.Debug("完了予約マーカー実行")

	count, err := m.bookingService.CompleteElapsedBookings(ctx)
	if err != nil {
		log.Error("完了予約マーカー失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("経過予約を完了に移行", zap.Int("count", count))
	} else {
		log.Debug("経過予約なし")
	}
}
