package repository

import (
	"context"
	"errors"

	"github.com/cinetix/ticketing/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

// overlapQuery uses half-open interval semantics: a showtime ending exactly
// when another starts does not conflict. excludeID is 0 for inserts; ids
// start at 1, so the exclusion predicate is a no-op there.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM showtimes
		WHERE theater_id = $1
		  AND start_time < $3
		  AND end_time > $2
		  AND id <> $4
	)
`

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var overlaps bool

		err := tx.QueryRow(
			ctx,
			overlapQuery,
			showtime.TheaterID,
			showtime.StartTime,
			showtime.EndTime,
			0).Scan(&overlaps)

		if err != nil {
			return err
		}

		if overlaps {
			return domain.ErrShowtimeOverlap
		}

		query := `
			INSERT INTO showtimes (movie_id, theater_id, start_time, end_time, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`

		return tx.QueryRow(
			ctx,
			query,
			showtime.MovieID,
			showtime.TheaterID,
			showtime.StartTime,
			showtime.EndTime,
			showtime.Price).Scan(&showtime.ID, &showtime.CreatedAt, &showtime.UpdatedAt)
	})

	return mapShowtimeError(err)
}

func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var overlaps bool

		err := tx.QueryRow(
			ctx,
			overlapQuery,
			showtime.TheaterID,
			showtime.StartTime,
			showtime.EndTime,
			showtime.ID).Scan(&overlaps)

		if err != nil {
			return err
		}

		if overlaps {
			return domain.ErrShowtimeOverlap
		}

		query := `
			UPDATE showtimes
			SET movie_id = $1, theater_id = $2, start_time = $3, end_time = $4, price = $5, updated_at = NOW()
			WHERE id = $6
			RETURNING created_at, updated_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			showtime.MovieID,
			showtime.TheaterID,
			showtime.StartTime,
			showtime.EndTime,
			showtime.Price,
			showtime.ID).Scan(&showtime.CreatedAt, &showtime.UpdatedAt)

		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	})

	return mapShowtimeError(err)
}

// mapShowtimeError translates a violation of the theater/timerange exclusion
// constraint into the domain conflict. The in-transaction overlap query gives
// the common case a clean answer; the constraint settles races between
// concurrent writers.
func mapShowtimeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
		return domain.ErrShowtimeOverlap
	}

	return err
}

func (p *PostgresShowtimeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowtimeRepository) GetByID(ctx context.Context, id int64) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, start_time, end_time, price, created_at, updated_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterID,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) GetAll(ctx context.Context) ([]*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, start_time, end_time, price, created_at, updated_at
		FROM showtimes
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]*domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err = rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.TheaterID,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Price,
			&showtime.CreatedAt,
			&showtime.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, &showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}
