package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/transaction"
)

type bookingRow struct {
	ID          string     `db:"id"`
	BoatID      string     `db:"boat_id"`
	RenterID    string     `db:"renter_id"`
	RenterName  string     `db:"renter_name"`
	StartDate   time.Time  `db:"start_date"`
	EndDate     time.Time  `db:"end_date"`
	Status      string     `db:"status"`
	TotalPrice  int        `db:"total_price"`
	CancelledAt *time.Time `db:"cancelled_at"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

const bookingColumns = `id, boat_id, renter_id, renter_name, start_date, end_date, status, total_price, cancelled_at, completed_at, created_at, updated_at`

type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}
	query := `INSERT INTO bookings (boat_id, renter_id, renter_name, start_date, end_date, status, total_price, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query, b.BoatID, b.RenterID, b.RenterName, b.Range.Start, b.Range.End, string(b.Status), b.TotalPrice, b.CreatedAt, b.UpdatedAt).Scan(&b.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			return booking.ErrBoatIDRequired
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return toBookingEntity(&row)
}

func (r *BookingRepository) ListByBoat(ctx context.Context, boatID string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE boat_id = $1 ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query, boatID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toBookingEntities(rows)
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string, limit, offset int) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE renter_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, renterID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toBookingEntities(rows)
}

func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}
	query := `UPDATE bookings SET start_date = $1, end_date = $2, status = $3, cancelled_at = $4, completed_at = $5, updated_at = $6 WHERE id = $7`
	result, err := sqlxTx.ExecContext(ctx, query, b.Range.Start, b.Range.End, string(b.Status), b.CancelledAt, b.CompletedAt, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListElapsedConfirmed(ctx context.Context, before time.Time) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'confirmed' AND end_date < $1`
	if err := r.db.SelectContext(ctx, &rows, query, before); err != nil {
		return nil, fmt.Errorf("経過予約取得に失敗: %w", err)
	}
	return toBookingEntities(rows)
}

func toBookingEntity(row *bookingRow) (*booking.Booking, error) {
	rng, err := daterange.New(row.StartDate, row.EndDate)
	if err != nil {
		return nil, fmt.Errorf("保存済み期間が不正です: %w", err)
	}
	return &booking.Booking{
		ID: row.ID, BoatID: row.BoatID,
		RenterID: row.RenterID, RenterName: row.RenterName,
		Range: rng, Status: booking.Status(row.Status),
		TotalPrice:  row.TotalPrice,
		CancelledAt: row.CancelledAt, CompletedAt: row.CompletedAt,
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}, nil
}

func toBookingEntities(rows []bookingRow) ([]*booking.Booking, error) {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		b, err := toBookingEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
