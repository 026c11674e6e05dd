package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/config"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/lock"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/logger"
)

// BlockService はオーナーによる利用不可期間の管理を扱う
type BlockService struct {
	blockRepo    block.Repository
	boatRepo     boat.Repository
	availability *AvailabilityService
	locks        lock.Manager
	lockCfg      config.LockConfig
}

func NewBlockService(bl block.Repository, bo boat.Repository, av *AvailabilityService, lm lock.Manager, lc config.LockConfig) *BlockService {
	return &BlockService{
		blockRepo:    bl,
		boatRepo:     bo,
		availability: av,
		locks:        lm,
		lockCfg:      lc,
	}
}

// AddBlock はブロック期間を追加する
// オーナーの管理操作であるため、既存予約との重なりは意図的に検査しない
func (s *BlockService) AddBlock(ctx context.Context, boatID string, rng daterange.DateRange, reason string) (*block.Block, error) {
	b := block.NewBlock(boatID, rng, reason)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.boatRepo.GetByID(ctx, boatID); err != nil {
		return nil, err
	}

	l, err := s.acquireBoatLock(ctx, boatID)
	if err != nil {
		return nil, err
	}
	defer s.releaseBoatLock(ctx, l)

	if err := s.blockRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.availability.InvalidateCache(ctx, boatID)
	return b, nil
}

// RemoveBlock はブロック期間を削除する
func (s *BlockService) RemoveBlock(ctx context.Context, boatID, blockID string) error {
	if _, err := s.boatRepo.GetByID(ctx, boatID); err != nil {
		return err
	}

	l, err := s.acquireBoatLock(ctx, boatID)
	if err != nil {
		return err
	}
	defer s.releaseBoatLock(ctx, l)

	if err := s.blockRepo.Delete(ctx, boatID, blockID); err != nil {
		return err
	}
	s.availability.InvalidateCache(ctx, boatID)
	return nil
}

// ListBlocks はボートのブロック期間一覧を返す
func (s *BlockService) ListBlocks(ctx context.Context, boatID string) ([]*block.Block, error) {
	if _, err := s.boatRepo.GetByID(ctx, boatID); err != nil {
		return nil, err
	}
	return s.blockRepo.ListByBoat(ctx, boatID)
}

func (s *BlockService) acquireBoatLock(ctx context.Context, boatID string) (lock.Lock, error) {
	l, err := s.locks.AcquireWithRetry(ctx, boatLockKey(boatID), s.lockCfg.TTL, s.lockCfg.MaxRetries, s.lockCfg.RetryDelay)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, booking.ErrBoatBusy
		}
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	return l, nil
}

func (s *BlockService) releaseBoatLock(ctx context.Context, l lock.Lock) {
	if err := l.Release(ctx); err != nil {
		logger.Warn("ロック解放に失敗: " + err.Error())
	}
}
