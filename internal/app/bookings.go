package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinetix/ticketing/internal/domain"
)

// CreateBookingRequest identifies the user either by an id previously issued
// by the user service or by first/last name, which is resolved to an id at
// the API boundary.
type CreateBookingRequest struct {
	ShowtimeID int64  `json:"showtimeId" validate:"required,gt=0"`
	SeatNumber int    `json:"seatNumber" validate:"required,gt=0"`
	UserID     string `json:"userId" validate:"required_without=FirstName"`
	FirstName  string `json:"firstName,omitempty" validate:"required_without=UserID"`
	LastName   string `json:"lastName,omitempty" validate:"required_with=FirstName"`
}

type CreateBookingResponse struct {
	BookingID string `json:"bookingId"`
}

type BookingResponse struct {
	BookingID  string    `json:"bookingId"`
	ShowtimeID int64     `json:"showtimeId"`
	SeatNumber int       `json:"seatNumber"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookTicket admits a booking: the showtime must exist, the seat must be
// within the theater's capacity and the (showtime, seat) pair must be free.
// The uniqueness check is settled by the insert itself, so concurrent
// requests for the same seat produce exactly one booking.
func (app *application) BookTicket(w http.ResponseWriter, r *http.Request) {
	var input CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userID := input.UserID

	if userID == "" {
		userID, err = app.users.GetIDByName(r.Context(), input.FirstName, input.LastName)
		if err != nil {
			app.lookupErrorResponse(w, r, err, "user")
			return
		}
	}

	showtime, err := app.showtimeRepo.GetByID(r.Context(), input.ShowtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.errorResponse(w, r, http.StatusNotFound, fmt.Sprintf("Showtime with ID %d not found", input.ShowtimeID))
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	theater, err := app.theaters.GetByID(r.Context(), showtime.TheaterID)
	if err != nil {
		app.lookupErrorResponse(w, r, err, "theater")
		return
	}

	if input.SeatNumber > theater.MaxCapacity {
		app.badRequestResponse(w, r, fmt.Errorf(
			"seat number %d exceeds theater capacity (max: %d)", input.SeatNumber, theater.MaxCapacity))
		return
	}

	booking := &domain.Booking{
		ShowtimeID: input.ShowtimeID,
		SeatNumber: input.SeatNumber,
		UserID:     userID,
	}

	err = app.bookingRepo.Create(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			app.conflictResponse(w, r, fmt.Sprintf(
				"Seat %d is already booked for this showtime", input.SeatNumber))
		case errors.Is(err, domain.ErrRecordNotFound):
			// The showtime was deleted between the read and the insert.
			app.errorResponse(w, r, http.StatusNotFound, fmt.Sprintf("Showtime with ID %d not found", input.ShowtimeID))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.logger.Info("booking created",
		"booking_id", booking.ID, "showtime_id", booking.ShowtimeID, "seat_number", booking.SeatNumber)

	resp := CreateBookingResponse{BookingID: booking.ID}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookingId")
	if id == "" {
		app.badRequestResponse(w, r, errors.New("invalid bookingId parameter"))
		return
	}

	booking, err := app.bookingRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := BookingResponse{
		BookingID:  booking.ID,
		ShowtimeID: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
		UserID:     booking.UserID,
		CreatedAt:  booking.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
