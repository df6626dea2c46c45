package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Showtime struct {
	ID        int64
	MovieID   int64
	TheaterID int64
	StartTime time.Time
	EndTime   time.Time
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the showtime's [StartTime, EndTime) interval
// intersects [start, end). Intervals that only touch at a boundary do not
// overlap.
func (s Showtime) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// ShowtimeRepository persists showtimes. Create and Update run the per-theater
// overlap check and the write as a single atomic unit and return
// ErrShowtimeOverlap when the interval conflicts with another showtime in the
// same theater.
type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *Showtime) error
	Update(ctx context.Context, showtime *Showtime) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Showtime, error)
	GetAll(ctx context.Context) ([]*Showtime, error)
}
