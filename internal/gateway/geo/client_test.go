package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"beexpress/internal/domain"
	"beexpress/internal/gateway/geo"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *geo.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return geo.NewClient(geo.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: time.Second,
	})
}

func TestClient_RouteDistanceKm_Success(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NotEmpty(t, r.URL.Query().Get("origins"))
		require.NotEmpty(t, r.URL.Query().Get("destinations"))
		_, _ = w.Write([]byte(`{
			"rows": [{"elements": [{"status": "OK", "distance": {"value": 12345, "text": "12.3 km"}}]}]
		}`))
	})

	km, err := client.RouteDistanceKm(context.Background(),
		domain.Coordinates{Lat: 55.75, Lng: 37.62},
		domain.Coordinates{Lat: 55.76, Lng: 37.63},
	)
	require.NoError(t, err)
	require.InDelta(t, 12.345, km, 1e-9)
}

func TestClient_RouteDistanceKm_NoRoute(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]}`))
	})

	_, err := client.RouteDistanceKm(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	require.ErrorIs(t, err, geo.ErrNoRoute)
}

func TestClient_RouteDistanceKm_EmptyRows(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rows": []}`))
	})

	_, err := client.RouteDistanceKm(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	require.ErrorIs(t, err, geo.ErrNoRoute)
}

func TestClient_RouteDistanceKm_HTTPStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.RouteDistanceKm(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	var statusErr *geo.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}
