package domain

import (
	"context"
	"time"
)

type Booking struct {
	ID         string
	ShowtimeID int64
	SeatNumber int
	UserID     string
	CreatedAt  time.Time
}

// BookingRepository persists bookings. Create returns ErrSeatAlreadyBooked
// when the (showtime, seat) pair is already taken and ErrRecordNotFound when
// the referenced showtime no longer exists.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
}
