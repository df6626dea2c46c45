package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cinetix/ticketing/internal/domain"
)

type CreateShowtimeRequest struct {
	MovieID   int64           `json:"movieId" validate:"required,gt=0"`
	Theater   string          `json:"theater" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"price"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   time.Time       `json:"endTime" validate:"required,gtfield=StartTime"`
}

type UpdateShowtimeRequest struct {
	MovieID   int64           `json:"movieId" validate:"required,gt=0"`
	TheaterID int64           `json:"theaterId" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price" validate:"price"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   time.Time       `json:"endTime" validate:"required,gtfield=StartTime"`
}

type ShowtimeResponse struct {
	ID          int64           `json:"id"`
	MovieID     int64           `json:"movieId"`
	MovieTitle  string          `json:"movieTitle,omitempty"`
	TheaterID   int64           `json:"theaterId"`
	TheaterName string          `json:"theaterName,omitempty"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	Price       decimal.Decimal `json:"price"`
}

// AddShowtime schedules a new showtime. The theater is resolved by name, the
// movie by id, and the overlap check plus insert happen atomically in the
// repository.
func (app *application) AddShowtime(w http.ResponseWriter, r *http.Request) {
	var input CreateShowtimeRequest

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

	movie, err := app.movies.GetByID(r.Context(), input.MovieID)
	if err != nil {
		app.lookupErrorResponse(w, r, err, "movie")
		return
	}

	theater, err := app.theaters.GetByName(r.Context(), input.Theater)
	if err != nil {
		app.lookupErrorResponse(w, r, err, "theater")
		return
	}

	showtime := &domain.Showtime{
		MovieID:   input.MovieID,
		TheaterID: theater.ID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Price:     input.Price,
	}

	err = app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		if errors.Is(err, domain.ErrShowtimeOverlap) {
			app.conflictResponse(w, r, "There are overlapping showtimes for this theater")
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.logger.Info("showtime created", "showtime_id", showtime.ID, "theater_id", theater.ID)

	resp := toShowtimeResponse(showtime, movie.Title, theater.Name)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateShowtime fully replaces a showtime. The overlap check excludes the
// row being updated so a showtime may keep (or shrink within) its own slot.
func (app *application) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input UpdateShowtimeRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movies.GetByID(r.Context(), input.MovieID)
	if err != nil {
		app.lookupErrorResponse(w, r, err, "movie")
		return
	}

	theater, err := app.theaters.GetByID(r.Context(), input.TheaterID)
	if err != nil {
		app.lookupErrorResponse(w, r, err, "theater")
		return
	}

	showtime := &domain.Showtime{
		ID:        id,
		MovieID:   input.MovieID,
		TheaterID: input.TheaterID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Price:     input.Price,
	}

	err = app.showtimeRepo.Update(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowtimeOverlap):
			app.conflictResponse(w, r, "There are overlapping showtimes for this theater")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.logger.Info("showtime updated", "showtime_id", showtime.ID)

	resp := toShowtimeResponse(showtime, movie.Title, theater.Name)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showtimeRepo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.logger.Info("showtime deleted", "showtime_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := app.enrichShowtime(r.Context(), showtime)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllShowtimes(w http.ResponseWriter, r *http.Request) {
	showtimes, err := app.showtimeRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]ShowtimeResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		resp = append(resp, app.enrichShowtime(r.Context(), showtime))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// enrichShowtime joins the human-readable movie title and theater name in at
// read time. Display fields stay empty when a collaborator cannot answer; a
// stored showtime is never hidden because of a failed lookup.
func (app *application) enrichShowtime(ctx context.Context, showtime *domain.Showtime) ShowtimeResponse {
	var movieTitle, theaterName string

	movie, err := app.movies.GetByID(ctx, showtime.MovieID)
	if err != nil {
		app.logger.Warn("could not resolve movie for showtime",
			"showtime_id", showtime.ID, "movie_id", showtime.MovieID, "error", err)
	} else {
		movieTitle = movie.Title
	}

	theater, err := app.theaters.GetByID(ctx, showtime.TheaterID)
	if err != nil {
		app.logger.Warn("could not resolve theater for showtime",
			"showtime_id", showtime.ID, "theater_id", showtime.TheaterID, "error", err)
	} else {
		theaterName = theater.Name
	}

	return toShowtimeResponse(showtime, movieTitle, theaterName)
}

func toShowtimeResponse(showtime *domain.Showtime, movieTitle, theaterName string) ShowtimeResponse {
	return ShowtimeResponse{
		ID:          showtime.ID,
		MovieID:     showtime.MovieID,
		MovieTitle:  movieTitle,
		TheaterID:   showtime.TheaterID,
		TheaterName: theaterName,
		StartTime:   showtime.StartTime,
		EndTime:     showtime.EndTime,
		Price:       showtime.Price,
	}
}

// lookupErrorResponse maps collaborator failures onto the API contract: a
// remote "not found", an unreachable remote and a rejected lookup all surface
// as 404, but the latter two are logged first so outages and contract
// mismatches stay distinguishable in the logs.
func (app *application) lookupErrorResponse(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, domain.ErrLookupRejected):
		app.logError(r, err)
		app.errorResponse(w, r, http.StatusNotFound, fmt.Sprintf("The requested %s not found", resource))
	case errors.Is(err, domain.ErrRecordNotFound):
		app.errorResponse(w, r, http.StatusNotFound, fmt.Sprintf("The requested %s not found", resource))
	default:
		app.serverErrorResponse(w, r, err)
	}
}
