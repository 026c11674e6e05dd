package application

import (
	"context"
	"fmt"
	"time"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/availability"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/logger"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/metrics"
)

const defaultCacheTTL = 5 * time.Minute

// AvailabilityService はボートの空き状況を集約する
type AvailabilityService struct {
	bookingRepo booking.Repository
	blockRepo   block.Repository
	boatRepo    boat.Repository
	cache       AvailabilityCache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
}

func NewAvailabilityService(br booking.Repository, bl block.Repository, bo boat.Repository, cache AvailabilityCache, m *metrics.Metrics) *AvailabilityService {
	return &AvailabilityService{
		bookingRepo: br,
		blockRepo:   bl,
		boatRepo:    bo,
		cache:       cache,
		cacheTTL:    defaultCacheTTL,
		metrics:     m,
	}
}

// ListUnavailable はボートの利用不可期間を開始日昇順で返す
// window指定時はウィンドウにかかる期間のみ返す（切り詰めは行わない）
func (s *AvailabilityService) ListUnavailable(ctx context.Context, boatID string, window *daterange.DateRange) ([]availability.Period, error) {
	if _, err := s.boatRepo.GetByID(ctx, boatID); err != nil {
		return nil, err
	}
	periods, err := s.collectPeriods(ctx, boatID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return periods, nil
	}
	filtered := make([]availability.Period, 0, len(periods))
	for _, p := range periods {
		if p.InWindow(*window) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// CheckAvailability は指定期間にボートが利用可能かを判定する
// excludeBookingID は日程変更時に自身の予約を衝突判定から除外するために使う
func (s *AvailabilityService) CheckAvailability(ctx context.Context, boatID string, rng daterange.DateRange, excludeBookingID string) (availability.Check, error) {
	if err := rng.Validate(); err != nil {
		return availability.Check{}, err
	}
	if _, err := s.boatRepo.GetByID(ctx, boatID); err != nil {
		return availability.Check{}, err
	}
	periods, err := s.collectPeriods(ctx, boatID)
	if err != nil {
		return availability.Check{}, err
	}
	check := evaluate(periods, rng, excludeBookingID)
	s.countCheck(check.Available)
	return check, nil
}

// check はメトリクスを記録しない内部判定
// 予約パイプラインのロック下再チェック専用で、キャッシュを経由せず
// 常にリポジトリの最新状態に対して判定する
func (s *AvailabilityService) check(ctx context.Context, boatID string, rng daterange.DateRange, excludeBookingID string) (availability.Check, error) {
	periods, err := s.collectFromRepositories(ctx, boatID)
	if err != nil {
		return availability.Check{}, err
	}
	return evaluate(periods, rng, excludeBookingID), nil
}

func evaluate(periods []availability.Period, rng daterange.DateRange, excludeBookingID string) availability.Check {
	for _, p := range periods {
		if excludeBookingID != "" && p.Kind == availability.KindBooking && p.ReferenceID == excludeBookingID {
			continue
		}
		if p.Range.Overlaps(rng) {
			return availability.Check{
				Available: false,
				Message:   fmt.Sprintf("期間 %s は既存の%sと重なっています", rng, kindLabel(p.Kind)),
			}
		}
	}
	return availability.Check{Available: true}
}

// collectPeriods はキャッシュ経由で利用不可期間を集約する
// 参照系の読み取り用で、書き込み判定には使わない
func (s *AvailabilityService) collectPeriods(ctx context.Context, boatID string) ([]availability.Period, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPeriods(ctx, boatID)
		if err == nil {
			return cached, nil
		}
	}

	periods, err := s.collectFromRepositories(ctx, boatID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPeriods(ctx, boatID, periods, s.cacheTTL); err != nil {
			logger.Warn("キャッシュ保存に失敗: " + err.Error())
		}
	}
	return periods, nil
}

// collectFromRepositories は占有中の予約とブロック期間をリポジトリから直接集約する
// キャンセル済み予約は含まれない
func (s *AvailabilityService) collectFromRepositories(ctx context.Context, boatID string) ([]availability.Period, error) {
	bookings, err := s.bookingRepo.ListByBoat(ctx, boatID)
	if err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	blocks, err := s.blockRepo.ListByBoat(ctx, boatID)
	if err != nil {
		return nil, fmt.Errorf("ブロック期間一覧取得に失敗: %w", err)
	}

	periods := make([]availability.Period, 0, len(bookings)+len(blocks))
	for _, b := range bookings {
		if b.Occupies() {
			periods = append(periods, availability.FromBooking(b))
		}
	}
	for _, b := range blocks {
		periods = append(periods, availability.FromBlock(b))
	}
	availability.Sort(periods)
	return periods, nil
}

// InvalidateCache はボートのキャッシュを無効化する
// 予約・ブロックの書き込み後に呼ばれる
func (s *AvailabilityService) InvalidateCache(ctx context.Context, boatID string) {
	invalidateCache(ctx, s.cache, boatID)
}

func (s *AvailabilityService) countCheck(available bool) {
	if s.metrics == nil {
		return
	}
	result := "unavailable"
	if available {
		result = "available"
	}
	s.metrics.AvailabilityChecksTotal.WithLabelValues(result).Inc()
}

func kindLabel(k availability.Kind) string {
	if k == availability.KindBlocked {
		return "ブロック期間"
	}
	return "予約"
}
