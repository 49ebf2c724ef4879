package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	MarkCanceled(ctx context.Context, id, penalty, refund int64, canceledAt time.Time) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, reference, user_id, flight_id, status, price_paid, penalty_amount, final_refund, created_at, canceled_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return executorFrom(ctx, r.db).QueryRow(ctx, `
		INSERT INTO bookings (reference, user_id, flight_id, status, price_paid)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		booking.Reference, booking.UserID, booking.FlightID, booking.Status, booking.PricePaid).
		Scan(&booking.ID, &booking.CreatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := executorFrom(ctx, r.db).QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := executorFrom(ctx, r.db).Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// MarkCanceled flips an active booking to canceled. The status guard keeps the
// transition one-way: a row that is already canceled is not touched and
// ErrBookingNotFound is reported to the caller, which re-reads the row.
func (r *PGBookingRepository) MarkCanceled(ctx context.Context, id, penalty, refund int64, canceledAt time.Time) (*domain.Booking, error) {
	row := executorFrom(ctx, r.db).QueryRow(ctx, `
		UPDATE bookings
		SET status=$1, penalty_amount=$2, final_refund=$3, canceled_at=$4
		WHERE id=$5 AND status=$6
		RETURNING `+bookingColumns,
		domain.BookingStatusCanceled, penalty, refund, canceledAt, id, domain.BookingStatusActive)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.Reference, &b.UserID, &b.FlightID, &b.Status,
		&b.PricePaid, &b.PenaltyAmount, &b.FinalRefund, &b.CreatedAt, &b.CanceledAt)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
