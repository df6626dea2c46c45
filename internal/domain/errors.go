package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrShowtimeOverlap     = errors.New("showtime overlaps with an existing showtime in this theater")
	ErrSeatAlreadyBooked   = errors.New("seat is already booked for this showtime")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrLookupRejected      = errors.New("upstream service rejected the lookup")
)
