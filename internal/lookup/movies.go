package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinetix/ticketing/internal/domain"
)

type MovieClient struct {
	client
}

func NewMovieClient(baseURL string, timeout time.Duration, logger *slog.Logger) *MovieClient {
	return &MovieClient{client: newClient(baseURL, timeout, logger)}
}

func (c *MovieClient) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	var payload struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Genre       string  `json:"genre"`
		Duration    int     `json:"duration"`
		Rating      float64 `json:"rating"`
		ReleaseYear int     `json:"releaseYear"`
	}

	err := c.getJSON(ctx, fmt.Sprintf("/movies/%d", id), &payload)
	if err != nil {
		return nil, err
	}

	return &domain.Movie{
		ID:          payload.ID,
		Title:       payload.Title,
		Genre:       payload.Genre,
		Duration:    payload.Duration,
		Rating:      payload.Rating,
		ReleaseYear: payload.ReleaseYear,
	}, nil
}
