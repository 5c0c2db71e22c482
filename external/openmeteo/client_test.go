package openmeteo

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birdielabs/caddie-api/internal/platform/resilience"
)

func TestClientCurrent_ParsesConditionsAndForecast(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast", r.URL.Path)
		require.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))
		require.Equal(t, "mph", r.URL.Query().Get("wind_speed_unit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current": {
				"temperature_2m": 58.3,
				"apparent_temperature": 55.1,
				"relative_humidity_2m": 72,
				"precipitation": 0,
				"weather_code": 2,
				"wind_speed_10m": 12.5,
				"wind_direction_10m": 30,
				"wind_gusts_10m": 21
			},
			"hourly": {
				"time": ["2026-08-30T14:00", "2026-08-30T15:00"],
				"temperature_2m": [58.3, 59.0],
				"wind_speed_10m": [12.5, 14.0],
				"precipitation_probability": [10, 20],
				"weather_code": [2, 61]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	snapshot, err := client.Current(t.Context(), 36.5674, -121.9500)
	require.NoError(t, err)

	require.Equal(t, 58.3, snapshot.Current.TempF)
	require.Equal(t, "Partly Cloudy", snapshot.Current.Condition)
	require.Equal(t, 12.5, snapshot.Current.Wind.SpeedMPH)
	require.Equal(t, "NNE", snapshot.Current.Wind.Direction)
	require.Equal(t, 21.0, snapshot.Current.Wind.GustsMPH)

	require.Len(t, snapshot.Forecast, 2)
	require.Equal(t, 59.0, snapshot.Forecast[1].TempF)
	require.Equal(t, "rain", snapshot.Forecast[1].Icon)
}

func TestClientElevation_ConvertsMetersToFeet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/elevation", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elevation": [100]}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{HTTPClient: srv.Client(), BaseURL: srv.URL})

	feet, err := client.Elevation(t.Context(), 39.6403, -106.3742)
	require.NoError(t, err)
	require.InDelta(t, 328.084, feet, 0.001)
}

func TestClientCurrent_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current": {"temperature_2m": 70}, "hourly": {}}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 1,
	})

	snapshot, err := client.Current(t.Context(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 70.0, snapshot.Current.TempF)
	require.Equal(t, int32(2), calls.Load())
}

func TestCompassFromDegrees(t *testing.T) {
	t.Parallel()

	cases := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{30, "NNE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{337.5, "NNW"},
		{360, "N"},
		{-90, "W"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, compassFromDegrees(tc.deg), "degrees=%v", tc.deg)
	}
}

func TestConditionFromCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code int
		want string
	}{
		{0, "Clear"},
		{2, "Partly Cloudy"},
		{45, "Fog"},
		{51, "Drizzle"},
		{63, "Rain"},
		{71, "Snow"},
		{80, "Rain Showers"},
		{95, "Thunderstorm"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, conditionFromCode(tc.code), "code=%d", tc.code)
	}
}

func TestFormatCoord(t *testing.T) {
	t.Parallel()

	require.Equal(t, "36.5674", formatCoord(36.5674))
	require.Equal(t, "-121.9500", formatCoord(-121.95))
}
