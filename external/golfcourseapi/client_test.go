package golfcourseapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const searchPayload = `{
	"courses": [
		{
			"id": "crs-001",
			"course_name": "Pebble Creek Golf Club",
			"city": "Monterey",
			"state": "CA",
			"latitude": 36.5674,
			"longitude": -121.95,
			"tees": [
				{"tee_name": "Blue", "tee_color": "blue", "total_yards": 6512, "course_rating": 71.8, "slope_rating": 129}
			],
			"holes": [
				{"hole_number": 1, "par": 4, "yards": 380}
			]
		}
	]
}`

func TestClientSearch_SendsAPIKeyAndMapsCourses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "pebble", r.URL.Query().Get("search_query"))
		require.Equal(t, "Key catalog-secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		APIKey:     "catalog-secret",
	})

	courses, err := client.Search(t.Context(), "pebble")
	require.NoError(t, err)
	require.Len(t, courses, 1)

	got := courses[0]
	require.Equal(t, "crs-001", got.ID)
	require.Equal(t, "Pebble Creek Golf Club", got.Name)
	require.Equal(t, 36.5674, got.Latitude)
	require.Len(t, got.Tees, 1)
	require.Equal(t, 6512, got.Tees[0].TotalYards)
	require.Equal(t, 129, got.Tees[0].Slope)
	require.Len(t, got.Holes, 1)
	require.Equal(t, 380, got.Holes[0].Yards)
}

func TestClientGetByID_Found(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courses/crs-001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"course": {"id": "crs-001", "course_name": "Pebble Creek Golf Club"}}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{HTTPClient: srv.Client(), BaseURL: srv.URL})

	got, found, err := client.GetByID(t.Context(), "crs-001")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Pebble Creek Golf Club", got.Name)
}

func TestClientGetByID_NotFoundIsNotAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{HTTPClient: srv.Client(), BaseURL: srv.URL})

	_, found, err := client.GetByID(t.Context(), "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestClientGetByID_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 3,
	})

	_, _, err := client.GetByID(t.Context(), "crs-001")
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
