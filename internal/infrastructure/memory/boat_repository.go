package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
)

// BoatRepository はインメモリのボートリポジトリ
type BoatRepository struct {
	mu    sync.RWMutex
	boats map[string]*boat.Boat
}

// NewBoatRepository は新しいBoatRepositoryを作成する
func NewBoatRepository() *BoatRepository {
	return &BoatRepository{boats: make(map[string]*boat.Boat)}
}

// Create は新しいボートを登録する（IDが未設定の場合は採番する）
func (r *BoatRepository) Create(ctx context.Context, b *boat.Boat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	c := *b
	r.boats[b.ID] = &c
	return nil
}

// GetByID はIDからボートを取得する
func (r *BoatRepository) GetByID(ctx context.Context, id string) (*boat.Boat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boats[id]
	if !ok {
		return nil, boat.ErrBoatNotFound
	}
	c := *b
	return &c, nil
}

// ListByOwner はオーナーIDからボート一覧を取得する
func (r *BoatRepository) ListByOwner(ctx context.Context, ownerID string) ([]*boat.Boat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*boat.Boat
	for _, b := range r.boats {
		if b.OwnerID == ownerID {
			c := *b
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ boat.Repository = (*BoatRepository)(nil)
