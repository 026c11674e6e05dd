package memory

import (
	"context"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/transaction"
)

// Tx はインメモリバックエンド用のトランザクション
// 書き込みはボート単位ロックの下で直列化されるため、コミット・ロールバックは何もしない
type Tx struct{}

func (t *Tx) Commit() error   { return nil }
func (t *Tx) Rollback() error { return nil }

// TxManager はインメモリバックエンド用のトランザクションマネージャー
type TxManager struct{}

// NewTxManager は新しいTxManagerを作成する
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Begin は新しいトランザクションを開始する
func (m *TxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	return &Tx{}, nil
}

var _ transaction.Manager = (*TxManager)(nil)
