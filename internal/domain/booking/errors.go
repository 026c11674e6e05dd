package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound         = errors.New("予約が見つかりません")
	ErrBookingCompleted        = errors.New("完了済みの予約はキャンセルできません")
	ErrBookingNotConfirmed     = errors.New("確定済みの予約ではありません")
	ErrBookingNotReschedulable = errors.New("終了した予約の日程は変更できません")
	ErrBoatIDRequired          = errors.New("ボートIDは必須です")
	ErrRenterIDRequired        = errors.New("利用者IDは必須です")

	// ErrRangeConflict は希望期間が既存の予約またはブロックと重なっている場合のエラー
	ErrRangeConflict = errors.New("指定期間は利用できません")

	// ErrBoatBusy はボート単位ロックの競合タイムアウト
	// 呼び出し側はバックオフ付きで再試行してよい
	ErrBoatBusy = errors.New("他のリクエストを処理中です。しばらくしてから再試行してください")
)
