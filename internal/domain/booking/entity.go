package booking

import (
	"time"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// Status は予約の状態を表す
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Booking はボートの予約エンティティを表す
type Booking struct {
	ID         string
	BoatID     string
	RenterID   string
	RenterName string
	Range      daterange.DateRange
	Status     Status
	// TotalPrice は呼び出し側が計算した金額をそのまま保持する（エンジンは価格計算をしない）
	TotalPrice  int
	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBooking は新しい予約を作成する（初期状態はconfirmed）
// 決済は外部のチェックアウトで完了しており、エンジンには確定済みイベントとして届く
func NewBooking(boatID, renterID, renterName string, rng daterange.DateRange, totalPrice int) *Booking {
	now := time.Now()
	return &Booking{
		BoatID:     boatID,
		RenterID:   renterID,
		RenterName: renterName,
		Range:      rng,
		Status:     StatusConfirmed,
		TotalPrice: totalPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Occupies は予約がボートの空き状況を占有するかを返す
// キャンセル済みの予約は空き状況に影響しない
func (b *Booking) Occupies() bool {
	return b.Status != StatusCancelled
}

// IsTerminal は予約が終端状態（変更不可）かを返す
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// Cancel は予約をキャンセルする
// 既にキャンセル済みの場合は何もしない（冪等）
func (b *Booking) Cancel() error {
	if b.Status == StatusCancelled {
		return nil
	}
	if b.Status == StatusCompleted {
		return ErrBookingCompleted
	}
	now := time.Now()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

// Complete は期間が経過した確定予約を完了にする
func (b *Booking) Complete() error {
	if b.Status != StatusConfirmed {
		return ErrBookingNotConfirmed
	}
	now := time.Now()
	b.Status = StatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now
	return nil
}

// Reschedule は予約期間を変更する
// 終端状態の予約は変更できない
func (b *Booking) Reschedule(rng daterange.DateRange) error {
	if b.IsTerminal() {
		return ErrBookingNotReschedulable
	}
	b.Range = rng
	b.UpdatedAt = time.Now()
	return nil
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.BoatID == "" {
		return ErrBoatIDRequired
	}
	if b.RenterID == "" {
		return ErrRenterIDRequired
	}
	return b.Range.Validate()
}
