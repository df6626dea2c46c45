package integration_test

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"

	"github.com/cinetix/ticketing/internal/domain"
	"github.com/cinetix/ticketing/internal/repository"
)

// BaseSuite runs the repositories against a real Postgres so the schema
// constraints that settle write races are exercised, not simulated.
type BaseSuite struct {
	suite.Suite
	dbContainer  *PostgresContainer
	db           *pgxpool.Pool
	showtimeRepo *repository.PostgresShowtimeRepository
	bookingRepo  *repository.PostgresBookingRepository
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	dbContainer, err := getDbContainer(ctx)
	s.Require().NoError(err, "failed to start container")

	db, err := pgxpool.New(ctx, dbContainer.ConnectionString)
	s.Require().NoError(err, "failed to create connection pool")

	s.dbContainer = dbContainer
	s.db = db
	s.showtimeRepo = repository.NewPostgresShowtimeRepository(db)
	s.bookingRepo = repository.NewPostgresBookingRepository(db)
}

// SetupTest resets the tables so every test starts from an empty schedule.
func (s *BaseSuite) SetupTest() {
	_, err := s.db.Exec(context.Background(), "TRUNCATE bookings, showtimes RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
}

func (s *BaseSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}

	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) mustCreateShowtime(theaterID int64, start, end time.Time) *domain.Showtime {
	s.T().Helper()

	showtime := &domain.Showtime{
		MovieID:   1,
		TheaterID: theaterID,
		StartTime: start,
		EndTime:   end,
		Price:     decimal.NewFromFloat(24.99),
	}

	s.Require().NoError(s.showtimeRepo.Create(context.Background(), showtime))

	return showtime
}

// at pins test intervals to a fixed day; only the hour matters.
func at(hour int) time.Time {
	return time.Date(2026, 3, 1, hour, 0, 0, 0, time.UTC)
}
