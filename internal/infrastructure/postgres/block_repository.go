package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

type blockRow struct {
	ID        string    `db:"id"`
	BoatID    string    `db:"boat_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

type BlockRepository struct{ db *sqlx.DB }

func NewBlockRepository(db *sqlx.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

func (r *BlockRepository) Create(ctx context.Context, b *block.Block) error {
	query := `INSERT INTO blocked_periods (boat_id, start_date, end_date, reason, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, b.BoatID, b.Range.Start, b.Range.End, b.Reason, b.CreatedAt).Scan(&b.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			return block.ErrBoatIDRequired
		}
		return fmt.Errorf("ブロック期間作成に失敗: %w", err)
	}
	return nil
}

func (r *BlockRepository) ListByBoat(ctx context.Context, boatID string) ([]*block.Block, error) {
	var rows []blockRow
	query := `SELECT id, boat_id, start_date, end_date, reason, created_at FROM blocked_periods WHERE boat_id = $1 ORDER BY start_date ASC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query, boatID); err != nil {
		return nil, fmt.Errorf("ブロック期間一覧取得に失敗: %w", err)
	}
	result := make([]*block.Block, len(rows))
	for i := range rows {
		b, err := toBlockEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

func (r *BlockRepository) Delete(ctx context.Context, boatID, blockID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blocked_periods WHERE id = $1 AND boat_id = $2`, blockID, boatID)
	if err != nil {
		return fmt.Errorf("ブロック期間削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return block.ErrBlockNotFound
	}
	return nil
}

func toBlockEntity(row *blockRow) (*block.Block, error) {
	rng, err := daterange.New(row.StartDate, row.EndDate)
	if err != nil {
		return nil, fmt.Errorf("保存済み期間が不正です: %w", err)
	}
	return &block.Block{
		ID: row.ID, BoatID: row.BoatID,
		Range: rng, Reason: row.Reason,
		CreatedAt: row.CreatedAt,
	}, nil
}

var _ block.Repository = (*BlockRepository)(nil)
