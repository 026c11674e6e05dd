package daterange

import (
	"errors"
	"fmt"
	"time"
)

// ISO形式（タイムゾーンなしのカレンダー日付）
const Layout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("日付の形式が不正です")
	ErrInvalidRange = errors.New("終了日は開始日以降でなければなりません")
)

// DateRange は日単位の閉区間 [Start, End] を表す
// 時刻成分は持たず、比較はカレンダー日付単位で行う
type DateRange struct {
	Start time.Time
	End   time.Time
}

// New は正規化済みのDateRangeを作成する
func New(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: truncate(start), End: truncate(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Parse はISO形式（YYYY-MM-DD）の2つの日付文字列からDateRangeを作成する
func Parse(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation(Layout, start, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %s", ErrInvalidDate, start)
	}
	e, err := time.ParseInLocation(Layout, end, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %s", ErrInvalidDate, end)
	}
	return New(s, e)
}

// Validate は Start <= End を検証する
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidDate
	}
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps は2つの期間が重なるかを返す
// 境界の接触（一方の終了日と他方の開始日が同日）も重なりとみなす
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Contains は指定日が期間内（両端含む）かを返す
func (r DateRange) Contains(day time.Time) bool {
	d := truncate(day)
	return !d.Before(r.Start) && !d.After(r.End)
}

// EndedBefore は期間全体が指定日より前に終了しているかを返す
func (r DateRange) EndedBefore(day time.Time) bool {
	return r.End.Before(truncate(day))
}

func (r DateRange) String() string {
	return r.Start.Format(Layout) + "〜" + r.End.Format(Layout)
}

// StartString は開始日のISO表現を返す
func (r DateRange) StartString() string { return r.Start.Format(Layout) }

// EndString は終了日のISO表現を返す
func (r DateRange) EndString() string { return r.End.Format(Layout) }

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
