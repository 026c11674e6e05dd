package boat

import "context"

// Repository はボートリポジトリのインターフェース
type Repository interface {
	// Create は新しいボートを登録する
	Create(ctx context.Context, boat *Boat) error

	// GetByID はIDからボートを取得する
	GetByID(ctx context.Context, id string) (*Boat, error)

	// ListByOwner はオーナーIDからボート一覧を取得する
	ListByOwner(ctx context.Context, ownerID string) ([]*Boat, error)
}
