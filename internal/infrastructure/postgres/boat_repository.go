package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
)

type boatRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BoatRepository struct{ db *sqlx.DB }

func NewBoatRepository(db *sqlx.DB) *BoatRepository {
	return &BoatRepository{db: db}
}

func (r *BoatRepository) Create(ctx context.Context, b *boat.Boat) error {
	query := `INSERT INTO boats (owner_id, name, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, b.OwnerID, b.Name, string(b.Status), b.CreatedAt, b.UpdatedAt).Scan(&b.ID); err != nil {
		return fmt.Errorf("ボート登録に失敗: %w", err)
	}
	return nil
}

func (r *BoatRepository) GetByID(ctx context.Context, id string) (*boat.Boat, error) {
	var row boatRow
	query := `SELECT id, owner_id, name, status, created_at, updated_at FROM boats WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, boat.ErrBoatNotFound
		}
		return nil, fmt.Errorf("ボート取得に失敗: %w", err)
	}
	return toBoatEntity(&row), nil
}

func (r *BoatRepository) ListByOwner(ctx context.Context, ownerID string) ([]*boat.Boat, error) {
	var rows []boatRow
	query := `SELECT id, owner_id, name, status, created_at, updated_at FROM boats WHERE owner_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("ボート一覧取得に失敗: %w", err)
	}
	result := make([]*boat.Boat, len(rows))
	for i := range rows {
		result[i] = toBoatEntity(&rows[i])
	}
	return result, nil
}

func toBoatEntity(row *boatRow) *boat.Boat {
	return &boat.Boat{
		ID: row.ID, OwnerID: row.OwnerID,
		Name: row.Name, Status: boat.Status(row.Status),
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

var _ boat.Repository = (*BoatRepository)(nil)
