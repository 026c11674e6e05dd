package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

func rng(t *testing.T, start, end string) daterange.DateRange {
	t.Helper()
	r, err := daterange.Parse(start, end)
	require.NoError(t, err)
	return r
}

func TestSort(t *testing.T) {
	periods := []Period{
		{Kind: KindBlocked, ReferenceID: "blk-2", Range: rng(t, "2024-08-01", "2024-08-05")},
		{Kind: KindBooking, ReferenceID: "bk-9", Range: rng(t, "2024-07-01", "2024-07-10")},
		{Kind: KindBlocked, ReferenceID: "blk-1", Range: rng(t, "2024-07-01", "2024-07-03")},
		{Kind: KindBooking, ReferenceID: "bk-1", Range: rng(t, "2024-07-01", "2024-07-05")},
	}

	Sort(periods)

	// 開始日昇順、同日ならbooking優先、さらに参照ID順
	assert.Equal(t, "bk-1", periods[0].ReferenceID)
	assert.Equal(t, "bk-9", periods[1].ReferenceID)
	assert.Equal(t, "blk-1", periods[2].ReferenceID)
	assert.Equal(t, "blk-2", periods[3].ReferenceID)
}

func TestFromBooking(t *testing.T) {
	b := booking.NewBooking("boat-7", "renter-1", "田中太郎", rng(t, "2024-07-01", "2024-07-10"), 45000)
	b.ID = "bk-1"

	p := FromBooking(b)

	assert.Equal(t, KindBooking, p.Kind)
	assert.Equal(t, "bk-1", p.ReferenceID)
	assert.Equal(t, "confirmed", p.Reason)
	assert.Equal(t, "田中太郎", p.Detail)
}

func TestFromBlock(t *testing.T) {
	blk := block.NewBlock("boat-7", rng(t, "2024-08-01", "2024-08-05"), "メンテナンス")
	blk.ID = "blk-1"

	p := FromBlock(blk)

	assert.Equal(t, KindBlocked, p.Kind)
	assert.Equal(t, "blk-1", p.ReferenceID)
	assert.Equal(t, "メンテナンス", p.Reason)
	assert.Empty(t, p.Detail)
}

func TestPeriod_InWindow(t *testing.T) {
	p := Period{Kind: KindBooking, Range: rng(t, "2024-07-05", "2024-07-10")}

	assert.True(t, p.InWindow(rng(t, "2024-07-01", "2024-07-31")))
	assert.True(t, p.InWindow(rng(t, "2024-07-10", "2024-07-15")))
	assert.False(t, p.InWindow(rng(t, "2024-07-11", "2024-07-15")))
	assert.False(t, p.InWindow(rng(t, "2024-06-01", "2024-07-04")))
}
