package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/availability"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/transaction"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/lock"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockBookingRepository implements booking.Repository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByBoat(ctx context.Context, boatID string) ([]*booking.Booking, error) {
	args := m.Called(ctx, boatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByRenter(ctx context.Context, renterID string, limit, offset int) ([]*booking.Booking, error) {
	args := m.Called(ctx, renterID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) ListElapsedConfirmed(ctx context.Context, before time.Time) ([]*booking.Booking, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

// MockBlockRepository implements block.Repository
type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) Create(ctx context.Context, b *block.Block) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBlockRepository) ListByBoat(ctx context.Context, boatID string) ([]*block.Block, error) {
	args := m.Called(ctx, boatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*block.Block), args.Error(1)
}

func (m *MockBlockRepository) Delete(ctx context.Context, boatID, blockID string) error {
	args := m.Called(ctx, boatID, blockID)
	return args.Error(0)
}

// MockBoatRepository implements boat.Repository
type MockBoatRepository struct {
	mock.Mock
}

func (m *MockBoatRepository) Create(ctx context.Context, b *boat.Boat) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoatRepository) GetByID(ctx context.Context, id string) (*boat.Boat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*boat.Boat), args.Error(1)
}

func (m *MockBoatRepository) ListByOwner(ctx context.Context, ownerID string) ([]*boat.Boat, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*boat.Boat), args.Error(1)
}

// MockLockManager implements lock.Manager
type MockLockManager struct {
	mock.Mock
}

func (m *MockLockManager) Acquire(ctx context.Context, key string, ttl time.Duration) (lock.Lock, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(lock.Lock), args.Error(1)
}

func (m *MockLockManager) AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (lock.Lock, error) {
	args := m.Called(ctx, key, ttl, maxRetries, retryDelay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(lock.Lock), args.Error(1)
}

// MockLock implements lock.Lock
type MockLock struct {
	mock.Mock
}

func (m *MockLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLock) Extend(ctx context.Context, ttl time.Duration) error {
	args := m.Called(ctx, ttl)
	return args.Error(0)
}

// MockAvailabilityCache implements AvailabilityCache
type MockAvailabilityCache struct {
	mock.Mock
}

func (m *MockAvailabilityCache) GetPeriods(ctx context.Context, boatID string) ([]availability.Period, error) {
	args := m.Called(ctx, boatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.Period), args.Error(1)
}

func (m *MockAvailabilityCache) SetPeriods(ctx context.Context, boatID string, periods []availability.Period, ttl time.Duration) error {
	args := m.Called(ctx, boatID, periods, ttl)
	return args.Error(0)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context, boatID string) error {
	args := m.Called(ctx, boatID)
	return args.Error(0)
}
