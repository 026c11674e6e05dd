package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
)

// BlockRepository はインメモリのブロック期間リポジトリ
type BlockRepository struct {
	mu     sync.RWMutex
	blocks map[string][]*block.Block // boatID -> blocks
}

// NewBlockRepository は新しいBlockRepositoryを作成する
func NewBlockRepository() *BlockRepository {
	return &BlockRepository{blocks: make(map[string][]*block.Block)}
}

// Create は新しいブロック期間を追加する（IDが未設定の場合は採番する）
func (r *BlockRepository) Create(ctx context.Context, b *block.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	c := *b
	r.blocks[b.BoatID] = append(r.blocks[b.BoatID], &c)
	return nil
}

// ListByBoat はボートのブロック期間一覧を開始日昇順で取得する
func (r *BlockRepository) ListByBoat(ctx context.Context, boatID string) ([]*block.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.blocks[boatID]
	result := make([]*block.Block, 0, len(src))
	for _, b := range src {
		c := *b
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Range.Start.Equal(result[j].Range.Start) {
			return result[i].Range.Start.Before(result[j].Range.Start)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete はブロック期間を完全に削除する（ソフトデリートなし）
func (r *BlockRepository) Delete(ctx context.Context, boatID, blockID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := r.blocks[boatID]
	for i, b := range src {
		if b.ID == blockID {
			r.blocks[boatID] = append(src[:i:i], src[i+1:]...)
			return nil
		}
	}
	return block.ErrBlockNotFound
}

var _ block.Repository = (*BlockRepository)(nil)
