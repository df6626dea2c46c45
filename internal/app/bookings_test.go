package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetix/ticketing/internal/domain"
	"github.com/cinetix/ticketing/internal/mocks"
)

func testShowtimeRepo() *mocks.MockShowtimeRepo {
	return &mocks.MockShowtimeRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Showtime, error) {
			return &domain.Showtime{
				ID:        id,
				MovieID:   1,
				TheaterID: 7,
				StartTime: testStart,
				EndTime:   testEnd,
				Price:     decimal.NewFromFloat(20.5),
			}, nil
		},
	}
}

func TestBookTicket(t *testing.T) {
	validBody := map[string]any{
		"showtimeId": 42,
		"seatNumber": 5,
		"userId":     "user-123",
	}

	tests := []struct {
		name           string
		body           map[string]any
		showtimeRepo   *mocks.MockShowtimeRepo
		theaters       *mocks.MockTheaterLookup
		users          *mocks.MockUserLookup
		createFunc     func(ctx context.Context, booking *domain.Booking) error
		wantStatus     int
		wantErrMessage string
		wantUserID     string
	}{
		{
			name: "successful booking",
			body: validBody,
			createFunc: func(ctx context.Context, booking *domain.Booking) error {
				booking.ID = "d1a2f5c0-0000-4000-8000-000000000001"
				return nil
			},
			wantStatus: http.StatusCreated,
			wantUserID: "user-123",
		},
		{
			name: "seat already booked",
			body: validBody,
			createFunc: func(ctx context.Context, booking *domain.Booking) error {
				return domain.ErrSeatAlreadyBooked
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "Seat 5 is already booked for this showtime",
		},
		{
			name: "seat exceeds theater capacity",
			body: map[string]any{
				"showtimeId": 42,
				"seatNumber": 150,
				"userId":     "user-123",
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "seat number 150 exceeds theater capacity (max: 100)",
		},
		{
			name: "showtime does not exist",
			body: validBody,
			showtimeRepo: &mocks.MockShowtimeRepo{
				GetByIDFunc: func(ctx context.Context, id int64) (*domain.Showtime, error) {
					return nil, domain.ErrRecordNotFound
				},
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "Showtime with ID 42 not found",
		},
		{
			name: "showtime deleted between read and insert",
			body: validBody,
			createFunc: func(ctx context.Context, booking *domain.Booking) error {
				return domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "Showtime with ID 42 not found",
		},
		{
			name: "theater lookup unreachable",
			body: validBody,
			theaters: &mocks.MockTheaterLookup{
				GetByIDFunc: func(ctx context.Context, id int64) (*domain.Theater, error) {
					return nil, fmt.Errorf("%w: timeout", domain.ErrUpstreamUnavailable)
				},
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested theater not found",
		},
		{
			name: "theater lookup rejected upstream",
			body: validBody,
			theaters: &mocks.MockTheaterLookup{
				GetByIDFunc: func(ctx context.Context, id int64) (*domain.Theater, error) {
					return nil, fmt.Errorf("%w: status 400", domain.ErrLookupRejected)
				},
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested theater not found",
		},
		{
			name: "user resolved by name",
			body: map[string]any{
				"showtimeId": 42,
				"seatNumber": 5,
				"firstName":  "Freddie",
				"lastName":   "Mercury",
			},
			users: &mocks.MockUserLookup{
				GetIDByNameFunc: func(ctx context.Context, firstName, lastName string) (string, error) {
					if firstName != "Freddie" || lastName != "Mercury" {
						return "", domain.ErrRecordNotFound
					}
					return "user-456", nil
				},
			},
			createFunc: func(ctx context.Context, booking *domain.Booking) error {
				booking.ID = "d1a2f5c0-0000-4000-8000-000000000002"
				return nil
			},
			wantStatus: http.StatusCreated,
			wantUserID: "user-456",
		},
		{
			name: "unknown user name",
			body: map[string]any{
				"showtimeId": 42,
				"seatNumber": 5,
				"firstName":  "John",
				"lastName":   "Doe",
			},
			users: &mocks.MockUserLookup{
				GetIDByNameFunc: func(ctx context.Context, firstName, lastName string) (string, error) {
					return "", domain.ErrRecordNotFound
				},
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested user not found",
		},
		{
			name: "missing user identity",
			body: map[string]any{
				"showtimeId": 42,
				"seatNumber": 5,
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "UserID is required",
		},
		{
			name: "seat number must be positive",
			body: map[string]any{
				"showtimeId": 42,
				"seatNumber": 0,
				"userId":     "user-123",
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "SeatNumber is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *domain.Booking

			app := newTestApplication(func(a *application) {
				a.theaters = testTheaterLookup()
				a.showtimeRepo = testShowtimeRepo()

				if tt.theaters != nil {
					a.theaters = tt.theaters
				}
				if tt.showtimeRepo != nil {
					a.showtimeRepo = tt.showtimeRepo
				}
				if tt.users != nil {
					a.users = tt.users
				}

				a.bookingRepo = &mocks.MockBookingRepo{
					CreateFunc: func(ctx context.Context, booking *domain.Booking) error {
						if tt.createFunc == nil {
							created = booking
							return nil
						}

						err := tt.createFunc(ctx, booking)
						if err == nil {
							created = booking
						}
						return err
					},
				}
			})

			w := executeRequest(t, app.routes(), http.MethodPost, "/bookings", tt.body)

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusCreated {
				var response CreateBookingResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.NotEmpty(t, response.BookingID)

				require.NotNil(t, created)
				assert.Equal(t, tt.wantUserID, created.UserID)
				assert.Equal(t, int64(42), created.ShowtimeID)
			} else if created != nil {
				t.Error("booking was persisted despite a failed request")
			}
		})
	}
}

// TestBookTicketConcurrent drives many simultaneous requests for the same
// seat through the handler against a store that enforces the (showtime, seat)
// uniqueness rule, mirroring the database constraint. Exactly one request may
// win.
func TestBookTicketConcurrent(t *testing.T) {
	const attempts = 50

	var (
		mu    sync.Mutex
		taken = make(map[string]bool)
	)

	app := newTestApplication(func(a *application) {
		a.theaters = testTheaterLookup()
		a.showtimeRepo = testShowtimeRepo()
		a.bookingRepo = &mocks.MockBookingRepo{
			CreateFunc: func(ctx context.Context, booking *domain.Booking) error {
				mu.Lock()
				defer mu.Unlock()

				key := fmt.Sprintf("%d:%d", booking.ShowtimeID, booking.SeatNumber)
				if taken[key] {
					return domain.ErrSeatAlreadyBooked
				}

				taken[key] = true
				booking.ID = fmt.Sprintf("booking-%d", len(taken))
				return nil
			},
		}
	})

	handler := app.routes()
	body := map[string]any{
		"showtimeId": 42,
		"seatNumber": 5,
		"userId":     "user-123",
	}

	var wg sync.WaitGroup
	statuses := make(chan int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := executeRequest(t, handler, http.MethodPost, "/bookings", body)
			statuses <- w.Code
		}()
	}

	wg.Wait()
	close(statuses)

	var succeeded, conflicted int
	for status := range statuses {
		switch status {
		case http.StatusCreated:
			succeeded++
		case http.StatusConflict:
			conflicted++
		default:
			t.Errorf("unexpected status %d", status)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one booking must win the seat")
	assert.Equal(t, attempts-1, conflicted)
}

func TestGetBooking(t *testing.T) {
	createdAt := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		getByIDFunc    func(ctx context.Context, id string) (*domain.Booking, error)
		wantStatus     int
		wantErrMessage string
		wantResponse   *BookingResponse
	}{
		{
			name: "successful retrieval",
			url:  "/bookings/d1a2f5c0-0000-4000-8000-000000000001",
			getByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
				return &domain.Booking{
					ID:         id,
					ShowtimeID: 42,
					SeatNumber: 5,
					UserID:     "user-123",
					CreatedAt:  createdAt,
				}, nil
			},
			wantStatus: http.StatusOK,
			wantResponse: &BookingResponse{
				BookingID:  "d1a2f5c0-0000-4000-8000-000000000001",
				ShowtimeID: 42,
				SeatNumber: 5,
				UserID:     "user-123",
				CreatedAt:  createdAt,
			},
		},
		{
			name: "booking does not exist",
			url:  "/bookings/d1a2f5c0-0000-4000-8000-00000000dead",
			getByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *application) {
				a.bookingRepo = &mocks.MockBookingRepo{
					GetByIDFunc: tt.getByIDFunc,
				}
			})

			w := executeRequest(t, app.routes(), http.MethodGet, tt.url, nil)

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantResponse != nil {
				var response BookingResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, *tt.wantResponse, response)
			}
		})
	}
}
