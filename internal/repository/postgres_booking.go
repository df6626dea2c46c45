package repository

import (
	"context"
	"errors"

	"github.com/cinetix/ticketing/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking and interprets constraint violations instead of
// pre-checking. The unique constraint on (showtime_id, seat_number) is the
// serialization point: when two requests race for the same seat, exactly one
// insert commits.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.ID = uuid.New().String()

	query := `
		INSERT INTO bookings (id, showtime_id, seat_number, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		booking.ID,
		booking.ShowtimeID,
		booking.SeatNumber,
		booking.UserID).Scan(&booking.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return domain.ErrSeatAlreadyBooked
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrRecordNotFound
			}
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id::text, showtime_id, seat_number, user_id, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.SeatNumber,
		&booking.UserID,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		// A malformed id fails the uuid cast; treat it like a miss.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}
