package boat

import "errors"

// Boat ドメインのエラー定義
var (
	ErrBoatNotFound    = errors.New("ボートが見つかりません")
	ErrBoatNotActive   = errors.New("ボートは現在予約を受け付けていません")
	ErrOwnerIDRequired = errors.New("オーナーIDは必須です")
	ErrNameRequired    = errors.New("ボート名は必須です")
)
