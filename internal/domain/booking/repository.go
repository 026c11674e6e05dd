package booking

import (
	"context"
	"time"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, booking *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListByBoat はボートの予約一覧を取得する（状態を問わず全件）
	ListByBoat(ctx context.Context, boatID string) ([]*Booking, error)

	// ListByRenter は利用者の予約一覧を取得する
	ListByRenter(ctx context.Context, renterID string, limit, offset int) ([]*Booking, error)

	// Update は予約を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, booking *Booking) error

	// ListElapsedConfirmed は終了日が指定日より前の確定予約を取得する
	ListElapsedConfirmed(ctx context.Context, before time.Time) ([]*Booking, error)
}
