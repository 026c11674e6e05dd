package block

import "context"

// Repository はブロック期間リポジトリのインターフェース
type Repository interface {
	// Create は新しいブロック期間を追加する
	Create(ctx context.Context, block *Block) error

	// ListByBoat はボートのブロック期間一覧を開始日昇順で取得する
	ListByBoat(ctx context.Context, boatID string) ([]*Block, error)

	// Delete はブロック期間を完全に削除する
	// 該当するブロックが存在しない場合はErrBlockNotFound
	Delete(ctx context.Context, boatID, blockID string) error
}
