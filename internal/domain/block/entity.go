package block

import (
	"time"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// Block はオーナーが手動で設定した利用不可期間を表す
// 予約と異なり状態遷移は持たない（存在するか、削除済みかのどちらか）
type Block struct {
	ID        string
	BoatID    string
	Range     daterange.DateRange
	Reason    string
	CreatedAt time.Time
}

const defaultReason = "利用不可"

// NewBlock は新しいブロック期間を作成する
// 理由が空の場合はデフォルトの理由を設定する
func NewBlock(boatID string, rng daterange.DateRange, reason string) *Block {
	if reason == "" {
		reason = defaultReason
	}
	return &Block{
		BoatID:    boatID,
		Range:     rng,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
}

// Validate はブロック期間の検証を行う
func (b *Block) Validate() error {
	if b.BoatID == "" {
		return ErrBoatIDRequired
	}
	return b.Range.Validate()
}
