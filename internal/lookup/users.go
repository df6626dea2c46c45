package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cinetix/ticketing/internal/domain"
)

type UserClient struct {
	client
}

func NewUserClient(baseURL string, timeout time.Duration, logger *slog.Logger) *UserClient {
	return &UserClient{client: newClient(baseURL, timeout, logger)}
}

func (c *UserClient) GetIDByName(ctx context.Context, firstName, lastName string) (string, error) {
	var payload struct {
		ID string `json:"id"`
	}

	path := fmt.Sprintf("/users/id/%s/%s", url.PathEscape(firstName), url.PathEscape(lastName))

	err := c.getJSON(ctx, path, &payload)
	if err != nil {
		return "", err
	}

	// The user service answers 200 with an empty id for unknown names.
	if payload.ID == "" {
		return "", domain.ErrRecordNotFound
	}

	return payload.ID, nil
}
