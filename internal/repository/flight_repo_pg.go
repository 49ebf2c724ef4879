package repository

import (
	"context"
	"errors"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	ReserveSeat(ctx context.Context, flightID int64) error
	ReleaseSeat(ctx context.Context, flightID int64) (bool, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `f.id, f.route_id, r.origin, r.destination, f.airline, f.plane_type, f.departure_time, f.price, f.seats_total, f.seats_available, f.cancel_penalty_percent, f.created_at, f.updated_at`

// Search applies the optional filters with AND semantics. Empty filter values
// match everything, so a single statement covers every combination.
func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	rows, err := executorFrom(ctx, r.db).Query(ctx, `
		SELECT `+flightColumns+`
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		WHERE ($1 = '' OR r.origin ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR r.destination ILIKE '%' || $2 || '%')
		  AND ($3::date IS NULL OR f.departure_time::date = $3::date)
		ORDER BY f.departure_time, f.id`,
		filter.Origin, filter.Destination, nullDate(filter))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := executorFrom(ctx, r.db).QueryRow(ctx, `
		SELECT `+flightColumns+`
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		WHERE f.id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ReserveSeat is the single point where seats are taken. The conditional
// update makes check-and-decrement one atomic statement: when two callers race
// for the last seat, exactly one sees a row affected.
func (r *PGFlightRepository) ReserveSeat(ctx context.Context, flightID int64) error {
	res, err := executorFrom(ctx, r.db).Exec(ctx,
		`UPDATE flights SET seats_available = seats_available - 1, updated_at = now() WHERE id=$1 AND seats_available > 0`,
		flightID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrSeatsUnavailable
	}
	return nil
}

// ReleaseSeat restores one seat, never past seats_total. Returns false when
// the counter was already at capacity and nothing changed.
func (r *PGFlightRepository) ReleaseSeat(ctx context.Context, flightID int64) (bool, error) {
	res, err := executorFrom(ctx, r.db).Exec(ctx,
		`UPDATE flights SET seats_available = seats_available + 1, updated_at = now() WHERE id=$1 AND seats_available < seats_total`,
		flightID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.RouteID, &f.Origin, &f.Destination, &f.Airline, &f.PlaneType,
		&f.DepartureTime, &f.Price, &f.SeatsTotal, &f.SeatsAvailable, &f.CancelPenaltyPercent,
		&f.CreatedAt, &f.UpdatedAt)
}

func nullDate(filter domain.FlightFilter) any {
	if filter.Date.IsZero() {
		return nil
	}
	return filter.Date
}

var _ FlightRepository = (*PGFlightRepository)(nil)
