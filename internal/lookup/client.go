package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cinetix/ticketing/internal/domain"
)

const (
	defaultTimeout = 3 * time.Second
	retryBackoff   = 250 * time.Millisecond
)

// client is the shared HTTP plumbing for the collaborator services. A 404
// becomes domain.ErrRecordNotFound; transport failures, timeouts and 5xx
// responses are retried once and then surface as domain.ErrUpstreamUnavailable.
// Any other 4xx is a definitive answer, not an outage, and wraps
// domain.ErrLookupRejected so the caller logs the cases apart.
type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func newClient(baseURL string, timeout time.Duration, logger *slog.Logger) client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c client) getJSON(ctx context.Context, path string, dst any) error {
	url := c.baseURL + path

	resp, err := c.do(ctx, url)
	if err != nil {
		c.logger.Warn("lookup attempt failed, retrying", "url", url, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %w", domain.ErrUpstreamUnavailable, url, ctx.Err())
		case <-time.After(retryBackoff):
		}

		resp, err = c.do(ctx, url)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrUpstreamUnavailable, url, err)
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrRecordNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: %s returned status %d", domain.ErrLookupRejected, url, resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		return fmt.Errorf("%w: decoding response from %s: %w", domain.ErrUpstreamUnavailable, url, err)
	}

	return nil
}

// do performs a single GET attempt. 5xx responses count as attempt failures
// so they go through the retry path.
func (c client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 500 {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return resp, nil
}
