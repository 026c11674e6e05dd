package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/config"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/transaction"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/lock"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/logger"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/metrics"
)

// BookingService は予約の作成・キャンセル・日程変更を扱う
// 書き込みは「ロック取得 → 再チェック → トランザクション確定」の順で行う
type BookingService struct {
	txManager    transaction.Manager
	bookingRepo  booking.Repository
	boatRepo     boat.Repository
	availability *AvailabilityService
	locks        lock.Manager
	lockCfg      config.LockConfig
	metrics      *metrics.Metrics
}

func NewBookingService(tm transaction.Manager, br booking.Repository, bo boat.Repository, av *AvailabilityService, lm lock.Manager, lc config.LockConfig, m *metrics.Metrics) *BookingService {
	return &BookingService{
		txManager:    tm,
		bookingRepo:  br,
		boatRepo:     bo,
		availability: av,
		locks:        lm,
		lockCfg:      lc,
		metrics:      m,
	}
}

type ReserveInput struct {
	BoatID     string
	RenterID   string
	RenterName string
	Range      daterange.DateRange
	TotalPrice int
}

// Reserve は新しい予約を作成する
// 同一ボートへの同時予約はボート単位ロックで直列化され、勝者は一人だけになる
func (s *BookingService) Reserve(ctx context.Context, input ReserveInput) (*booking.Booking, error) {
	b := booking.NewBooking(input.BoatID, input.RenterID, input.RenterName, input.Range, input.TotalPrice)
	if err := b.Validate(); err != nil {
		s.countBooking("reserve", "error")
		return nil, err
	}

	bt, err := s.boatRepo.GetByID(ctx, input.BoatID)
	if err != nil {
		s.countBooking("reserve", "error")
		return nil, err
	}
	if !bt.IsActive() {
		s.countBooking("reserve", "error")
		return nil, boat.ErrBoatNotActive
	}

	l, err := s.acquireBoatLock(ctx, input.BoatID)
	if err != nil {
		s.countBooking("reserve", "busy")
		return nil, err
	}
	defer s.releaseBoatLock(ctx, l)

	// ロック下での再チェック
	// ロック待ちの間に別の予約が確定している可能性がある
	check, err := s.availability.check(ctx, input.BoatID, input.Range, "")
	if err != nil {
		s.countBooking("reserve", "error")
		return nil, err
	}
	if !check.Available {
		s.countBooking("reserve", "conflict")
		return nil, fmt.Errorf("%w: %s", booking.ErrRangeConflict, check.Message)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.countBooking("reserve", "error")
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		s.countBooking("reserve", "error")
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.countBooking("reserve", "error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.availability.InvalidateCache(ctx, input.BoatID)
	s.countBooking("reserve", "success")
	return b, nil
}

// Cancel は予約をキャンセルする
// 既にキャンセル済みの場合はそのまま返す（冪等）
func (s *BookingService) Cancel(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.countBooking("cancel", "error")
		return nil, err
	}
	if b.Status == booking.StatusCancelled {
		s.countBooking("cancel", "success")
		return b, nil
	}

	l, err := s.acquireBoatLock(ctx, b.BoatID)
	if err != nil {
		s.countBooking("cancel", "busy")
		return nil, err
	}
	defer s.releaseBoatLock(ctx, l)

	// ロック下で再取得
	// ロック待ちの間に状態が変わっている可能性がある
	b, err = s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.countBooking("cancel", "error")
		return nil, err
	}
	if b.Status == booking.StatusCancelled {
		s.countBooking("cancel", "success")
		return b, nil
	}
	if err := b.Cancel(); err != nil {
		s.countBooking("cancel", "error")
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.countBooking("cancel", "error")
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		s.countBooking("cancel", "error")
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.countBooking("cancel", "error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.availability.InvalidateCache(ctx, b.BoatID)
	s.countBooking("cancel", "success")
	return b, nil
}

// Reschedule は予約の期間を変更する
// 衝突判定では自身の予約を除外する
func (s *BookingService) Reschedule(ctx context.Context, id string, rng daterange.DateRange) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.countBooking("reschedule", "error")
		return nil, err
	}
	if b.IsTerminal() {
		s.countBooking("reschedule", "error")
		return nil, booking.ErrBookingNotReschedulable
	}

	l, err := s.acquireBoatLock(ctx, b.BoatID)
	if err != nil {
		s.countBooking("reschedule", "busy")
		return nil, err
	}
	defer s.releaseBoatLock(ctx, l)

	// ロック下で再取得・再判定
	// ロック待ちの間にキャンセルや完了が確定していたら古いコピーを書き戻さない
	b, err = s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.countBooking("reschedule", "error")
		return nil, err
	}
	if b.IsTerminal() {
		s.countBooking("reschedule", "error")
		return nil, booking.ErrBookingNotReschedulable
	}

	check, err := s.availability.check(ctx, b.BoatID, rng, b.ID)
	if err != nil {
		s.countBooking("reschedule", "error")
		return nil, err
	}
	if !check.Available {
		s.countBooking("reschedule", "conflict")
		return nil, fmt.Errorf("%w: %s", booking.ErrRangeConflict, check.Message)
	}

	if err := b.Reschedule(rng); err != nil {
		s.countBooking("reschedule", "error")
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.countBooking("reschedule", "error")
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		s.countBooking("reschedule", "error")
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.countBooking("reschedule", "error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.availability.InvalidateCache(ctx, b.BoatID)
	s.countBooking("reschedule", "success")
	return b, nil
}

// GetBooking はIDから予約を取得する
func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// ListRenterBookings は利用者の予約一覧を取得する
func (s *BookingService) ListRenterBookings(ctx context.Context, renterID string, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.ListByRenter(ctx, renterID, limit, offset)
}

// CompleteElapsedBookings は期間が経過した確定予約を完了にする
// ワーカーから定期的に呼ばれ、処理した件数を返す
func (s *BookingService) CompleteElapsedBookings(ctx context.Context) (int, error) {
	elapsed, err := s.bookingRepo.ListElapsedConfirmed(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("経過予約取得に失敗: %w", err)
	}

	completed := 0
	for _, b := range elapsed {
		if err := b.Complete(); err != nil {
			continue
		}
		tx, err := s.txManager.Begin(ctx)
		if err != nil {
			return completed, fmt.Errorf("トランザクション開始に失敗: %w", err)
		}
		if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
			tx.Rollback()
			logger.Error(fmt.Sprintf("予約完了処理に失敗 (id=%s): %v", b.ID, err))
			continue
		}
		if err := tx.Commit(); err != nil {
			logger.Error(fmt.Sprintf("予約完了コミットに失敗 (id=%s): %v", b.ID, err))
			continue
		}
		s.availability.InvalidateCache(ctx, b.BoatID)
		completed++
	}
	return completed, nil
}

// acquireBoatLock はボート単位ロックをリトライ付きで取得する
// 取得できない場合は ErrBoatBusy を返す
func (s *BookingService) acquireBoatLock(ctx context.Context, boatID string) (lock.Lock, error) {
	start := time.Now()
	l, err := s.locks.AcquireWithRetry(ctx, boatLockKey(boatID), s.lockCfg.TTL, s.lockCfg.MaxRetries, s.lockCfg.RetryDelay)
	s.observeLock("acquire", err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, booking.ErrBoatBusy
		}
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	return l, nil
}

func (s *BookingService) releaseBoatLock(ctx context.Context, l lock.Lock) {
	start := time.Now()
	err := l.Release(ctx)
	s.observeLock("release", err == nil, time.Since(start))
	if err != nil {
		logger.Warn("ロック解放に失敗: " + err.Error())
	}
}

func (s *BookingService) observeLock(operation string, ok bool, d time.Duration) {
	if s.metrics == nil {
		return
	}
	status := "failed"
	if ok {
		status = "success"
	}
	s.metrics.LockDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

func (s *BookingService) countBooking(operation, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.BookingsTotal.WithLabelValues(operation, status).Inc()
}
