package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"beexpress/internal/domain"
)

// ErrNoRoute is returned when the mapping service cannot find a route
// between the two points.
var ErrNoRoute = errors.New("no route found")

// StatusError is a non-2xx response from the mapping service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("distance matrix: http status %d", e.Code)
}

// Config stores distance matrix client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client fetches route distances from the Google Distance Matrix API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a distance matrix client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
	}
}

type matrixResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int64  `json:"value"` // meters
				Text  string `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// RouteDistanceKm returns the route distance in kilometers between two
// coordinate pairs.
func (c *Client) RouteDistanceKm(ctx context.Context, origin, dest domain.Coordinates) (float64, error) {
	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("destinations", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("distance matrix: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance matrix: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{Code: resp.StatusCode}
	}

	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("distance matrix: decode: %w", err)
	}

	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return 0, ErrNoRoute
	}
	el := body.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, ErrNoRoute
	}

	return float64(el.Distance.Value) / 1000, nil
}
