package iex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
)

// StatusError is returned when the API responds with a non-success
// status. It carries the status code and the raw body so callers can
// surface both; transport and decode failures are returned as plain
// wrapped errors instead.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with code %d: %s", e.Code, e.Body)
}

// Client calls the IEX Cloud API, attaching the configured token to
// every request.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client. If httpClient is nil a default client
// with the configured timeout and a tuned transport is used.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: 3 * cfg.Timeout / 10}).DialContext,
				MaxIdleConnsPerHost: 16,
				ForceAttemptHTTP2:   true,
			},
		}
	}
	return &Client{cfg: cfg, client: httpClient}
}

// get performs a GET against path with the given query parameters and
// decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("token", c.cfg.Token)

	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("iex: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &StatusError{Code: res.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("iex: decode %s: %w", path, err)
	}
	return nil
}
