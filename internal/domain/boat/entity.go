package boat

import "time"

// Status はボートの公開状態を表す
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Boat は貸し出し対象のボートを表す
// 予約エンジンにとっては外部参照であり、所有者・名称など最小限の情報のみ持つ
type Boat struct {
	ID        string
	OwnerID   string
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBoat は新しいボートを作成する
func NewBoat(ownerID, name string) *Boat {
	now := time.Now()
	return &Boat{
		OwnerID:   ownerID,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive はボートが予約受付中かを返す
func (b *Boat) IsActive() bool {
	return b.Status == StatusActive
}

// Validate はボートの検証を行う
func (b *Boat) Validate() error {
	if b.OwnerID == "" {
		return ErrOwnerIDRequired
	}
	if b.Name == "" {
		return ErrNameRequired
	}
	return nil
}
