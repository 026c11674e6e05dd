package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/config"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
)

func newBlockService(t *testing.T) (*BlockService, *bookingServiceMocks) {
	t.Helper()
	m := &bookingServiceMocks{
		bookingRepo: new(MockBookingRepository),
		blockRepo:   new(MockBlockRepository),
		boatRepo:    new(MockBoatRepository),
		locks:       new(MockLockManager),
	}
	av := NewAvailabilityService(m.bookingRepo, m.blockRepo, m.boatRepo, nil, nil)
	svc := NewBlockService(m.blockRepo, m.boatRepo, av, m.locks, config.LockConfig{})
	return svc, m
}

func TestAddBlock_Success(t *testing.T) {
	svc, m := newBlockService(t)

	m.boatRepo.On("GetByID", mock.Anything, "boat-1").Return(activeBoat("boat-1"), nil)
	expectLock(m, "boat:boat-1")
	m.blockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.AddBlock(context.Background(), "boat-1", mustRange(t, "2026-06-01", "2026-06-05"), "整備期間")
	require.NoError(t, err)
	assert.Equal(t, "整備期間", b.Reason)
	// 既存予約との重なり検査は行わない（オーナーの管理操作のため）
	m.bookingRepo.AssertNotCalled(t, "ListByBoat", mock.Anything, mock.Anything)
}

func TestAddBlock_DefaultReason(t *testing.T) {
	svc, m := newBlockService(t)

	m.boatRepo.On("GetByID", mock.Anything, "boat-1").Return(activeBoat("boat-1"), nil)
	expectLock(m, "boat:boat-1")
	m.blockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.AddBlock(context.Background(), "boat-1", mustRange(t, "2026-06-01", "2026-06-05"), "")
	require.NoError(t, err)
	assert.Equal(t, "利用不可", b.Reason)
}

func TestAddBlock_BoatNotFound(t *testing.T) {
	svc, m := newBlockService(t)

	m.boatRepo.On("GetByID", mock.Anything, "missing").Return(nil, boat.ErrBoatNotFound)

	_, err := svc.AddBlock(context.Background(), "missing", mustRange(t, "2026-06-01", "2026-06-05"), "")
	assert.ErrorIs(t, err, boat.ErrBoatNotFound)
}

func TestRemoveBlock_NotFound(t *testing.T) {
	svc, m := newBlockService(t)

	m.boatRepo.On("GetByID", mock.Anything, "boat-1").Return(activeBoat("boat-1"), nil)
	expectLock(m, "boat:boat-1")
	m.blockRepo.On("Delete", mock.Anything, "boat-1", "missing").Return(block.ErrBlockNotFound)

	err := svc.RemoveBlock(context.Background(), "boat-1", "missing")
	assert.ErrorIs(t, err, block.ErrBlockNotFound)
}

func TestListBlocks(t *testing.T) {
	svc, m := newBlockService(t)

	m.boatRepo.On("GetByID", mock.Anything, "boat-1").Return(activeBoat("boat-1"), nil)
	m.blockRepo.On("ListByBoat", mock.Anything, "boat-1").Return([]*block.Block{
		{ID: "bl-1", BoatID: "boat-1", Range: mustRange(t, "2026-06-01", "2026-06-05")},
	}, nil)

	blocks, err := svc.ListBlocks(context.Background(), "boat-1")
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}
