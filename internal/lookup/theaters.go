package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cinetix/ticketing/internal/domain"
)

type TheaterClient struct {
	client
}

func NewTheaterClient(baseURL string, timeout time.Duration, logger *slog.Logger) *TheaterClient {
	return &TheaterClient{client: newClient(baseURL, timeout, logger)}
}

type theaterPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	MaxCapacity int    `json:"max_person"`
}

func (p theaterPayload) toDomain() *domain.Theater {
	return &domain.Theater{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		MaxCapacity: p.MaxCapacity,
	}
}

func (c *TheaterClient) GetByID(ctx context.Context, id int64) (*domain.Theater, error) {
	var payload theaterPayload

	err := c.getJSON(ctx, fmt.Sprintf("/theaters/%d", id), &payload)
	if err != nil {
		return nil, err
	}

	return payload.toDomain(), nil
}

func (c *TheaterClient) GetByName(ctx context.Context, name string) (*domain.Theater, error) {
	var payload theaterPayload

	err := c.getJSON(ctx, "/theaters/name/"+url.PathEscape(name), &payload)
	if err != nil {
		return nil, err
	}

	return payload.toDomain(), nil
}
