package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/transaction"
)

// BookingRepository はインメモリの予約リポジトリ
// モックデータの配列書き換えではなく、リポジトリインターフェースの完全な実装として振る舞う
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*booking.Booking
}

// NewBookingRepository は新しいBookingRepositoryを作成する
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[string]*booking.Booking)}
}

// Create は新しい予約を保存する（IDが未設定の場合は採番する）
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

// GetByID はIDから予約を取得する
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// ListByBoat はボートの予約一覧を作成日昇順で取得する
func (r *BookingRepository) ListByBoat(ctx context.Context, boatID string) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.BoatID == boatID {
			result = append(result, cloneBooking(b))
		}
	}
	sortBookings(result)
	return result, nil
}

// ListByRenter は利用者の予約一覧を取得する
func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string, limit, offset int) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.RenterID == renterID {
			result = append(result, cloneBooking(b))
		}
	}
	sortBookings(result)
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// Update は予約を更新する
func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return booking.ErrBookingNotFound
	}
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

// ListElapsedConfirmed は終了日が指定日より前の確定予約を取得する
func (r *BookingRepository) ListElapsedConfirmed(ctx context.Context, before time.Time) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.Status == booking.StatusConfirmed && b.Range.EndedBefore(before) {
			result = append(result, cloneBooking(b))
		}
	}
	sortBookings(result)
	return result, nil
}

func sortBookings(bs []*booking.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].CreatedAt.Before(bs[j].CreatedAt)
		}
		return bs[i].ID < bs[j].ID
	})
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	c := *b
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		c.CancelledAt = &t
	}
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

var _ booking.Repository = (*BookingRepository)(nil)
