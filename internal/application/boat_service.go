package application

import (
	"context"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
)

// BoatService はボートの登録・参照を扱う
// 予約エンジンにとってボートは参照情報であり、詳細な属性は対象外
type BoatService struct {
	boatRepo boat.Repository
}

func NewBoatService(bo boat.Repository) *BoatService {
	return &BoatService{boatRepo: bo}
}

// RegisterBoat は新しいボートを登録する
func (s *BoatService) RegisterBoat(ctx context.Context, ownerID, name string) (*boat.Boat, error) {
	b := boat.NewBoat(ownerID, name)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.boatRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBoat はIDからボートを取得する
func (s *BoatService) GetBoat(ctx context.Context, id string) (*boat.Boat, error) {
	return s.boatRepo.GetByID(ctx, id)
}

// ListOwnerBoats はオーナーのボート一覧を返す
func (s *BoatService) ListOwnerBoats(ctx context.Context, ownerID string) ([]*boat.Boat, error) {
	return s.boatRepo.ListByOwner(ctx, ownerID)
}
