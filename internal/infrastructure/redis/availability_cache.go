package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/availability"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCache はボートごとの利用不可期間一覧をキャッシュする
// 予約・ブロックへの書き込みのたびに無効化される
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// cachedPeriod はキャッシュ上の期間表現（日付はISO文字列）
type cachedPeriod struct {
	Kind        string `json:"kind"`
	ReferenceID string `json:"reference_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
	Detail      string `json:"detail,omitempty"`
}

// GetPeriods はボートの利用不可期間一覧をキャッシュから取得する
func (c *AvailabilityCache) GetPeriods(ctx context.Context, boatID string) ([]availability.Period, error) {
	raw, err := c.client.Get(ctx, c.periodsKey(boatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var cached []cachedPeriod
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	periods := make([]availability.Period, 0, len(cached))
	for _, p := range cached {
		rng, err := daterange.Parse(p.StartDate, p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
		}
		periods = append(periods, availability.Period{
			Kind:        availability.Kind(p.Kind),
			ReferenceID: p.ReferenceID,
			Range:       rng,
			Reason:      p.Reason,
			Detail:      p.Detail,
		})
	}
	return periods, nil
}

// SetPeriods はボートの利用不可期間一覧をキャッシュに保存する
func (c *AvailabilityCache) SetPeriods(ctx context.Context, boatID string, periods []availability.Period, ttl time.Duration) error {
	cached := make([]cachedPeriod, 0, len(periods))
	for _, p := range periods {
		cached = append(cached, cachedPeriod{
			Kind:        string(p.Kind),
			ReferenceID: p.ReferenceID,
			StartDate:   p.Range.StartString(),
			EndDate:     p.Range.EndString(),
			Reason:      p.Reason,
			Detail:      p.Detail,
		})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("キャッシュの変換に失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.periodsKey(boatID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はボートのキャッシュを無効化する
func (c *AvailabilityCache) Invalidate(ctx context.Context, boatID string) error {
	if err := c.client.Del(ctx, c.periodsKey(boatID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) periodsKey(boatID string) string {
	return fmt.Sprintf("availability:periods:%s", boatID)
}
