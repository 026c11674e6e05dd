package block

import "errors"

// Block ドメインのエラー定義
var (
	ErrBlockNotFound  = errors.New("ブロック期間が見つかりません")
	ErrBoatIDRequired = errors.New("ボートIDは必須です")
)
