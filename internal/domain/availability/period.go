package availability

import (
	"sort"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// Kind は利用不可期間の種別を表す
type Kind string

const (
	KindBooking Kind = "booking"
	KindBlocked Kind = "blocked"
)

// Period は予約またはブロックがボートを占有している期間の読み取り専用ビュー
// 集約結果としてのみ生成され、保存されることはない
type Period struct {
	Kind        Kind
	ReferenceID string
	Range       daterange.DateRange
	Reason      string
	Detail      string
}

// Check は空き状況チェックの結果
type Check struct {
	Available bool
	Message   string
}

// FromBooking は予約からPeriodを生成する
func FromBooking(b *booking.Booking) Period {
	return Period{
		Kind:        KindBooking,
		ReferenceID: b.ID,
		Range:       b.Range,
		Reason:      string(b.Status),
		Detail:      b.RenterName,
	}
}

// FromBlock はブロック期間からPeriodを生成する
func FromBlock(b *block.Block) Period {
	return Period{
		Kind:        KindBlocked,
		ReferenceID: b.ID,
		Range:       b.Range,
		Reason:      b.Reason,
	}
}

// Sort は期間一覧を開始日昇順に整列する
// 同じ開始日は種別（booking → blocked）、参照ID順で決定的に並ぶ
func Sort(periods []Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		a, b := periods[i], periods[j]
		if !a.Range.Start.Equal(b.Range.Start) {
			return a.Range.Start.Before(b.Range.Start)
		}
		if a.Kind != b.Kind {
			return a.Kind == KindBooking
		}
		return a.ReferenceID < b.ReferenceID
	})
}

// InWindow は期間がウィンドウに一部でもかかっているかを返す
// ウィンドウ外の期間は除外されるだけで、切り詰めは行わない
func (p Period) InWindow(window daterange.DateRange) bool {
	return p.Range.Overlaps(window)
}
