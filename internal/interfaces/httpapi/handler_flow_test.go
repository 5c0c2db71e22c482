package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/birdielabs/caddie-api/internal/domain/user"
	"github.com/birdielabs/caddie-api/internal/domain/weather"
	"github.com/birdielabs/caddie-api/internal/infrastructure/repository/memory"
	"github.com/birdielabs/caddie-api/internal/platform/cache"
	idgen "github.com/birdielabs/caddie-api/internal/platform/id"
	"github.com/birdielabs/caddie-api/internal/usecase"
)

type flowWeatherProvider struct{}

func (flowWeatherProvider) Current(context.Context, float64, float64) (weather.Snapshot, error) {
	return weather.Snapshot{
		Current: weather.Current{
			TempF: 70,
			Wind:  weather.Wind{SpeedMPH: 10, Direction: "N"},
		},
	}, nil
}

func (flowWeatherProvider) Elevation(context.Context, float64, float64) (float64, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	shotRepo := memory.NewShotRepository()
	roundRepo := memory.NewRoundRepository()
	tendencyRepo := memory.NewTendencyRepository()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ids := idgen.NewRandomGenerator()

	shotSvc := usecase.NewShotService(shotRepo, roundRepo, flowWeatherProvider{}, cache.NewStore(time.Minute), ids)
	statsSvc := usecase.NewClubStatsService(shotRepo, tendencyRepo, cache.NewStore(time.Minute))
	roundSvc := usecase.NewRoundService(roundRepo, shotRepo, ids)
	insightSvc := usecase.NewInsightService(roundRepo, shotRepo, cache.NewStore(time.Minute))

	handler := NewHandler(shotSvc, statsSvc, roundSvc, insightSvc, nil, logger)
	verifier := fakeVerifier{principal: user.Principal{UserID: "user-1"}}

	return NewRouter(handler, verifier, logger, []string{"*"}, "job-secret")
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer tok-abc")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response for %s %s: %v (body: %s)", method, path, err, rec.Body.String())
	}
	return rec, envelope
}

func TestRouter_RoundLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/rounds", `{"course_name":"Pebble Creek Golf Club","tee_name":"Blue"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start round: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ := envelope["data"].(map[string]any)
	roundID, _ := data["id"].(string)
	if roundID == "" {
		t.Fatalf("missing round id in response: %v", envelope)
	}

	for hole := 1; hole <= 9; hole++ {
		body := `{"hole":` + strconv.Itoa(hole) + `,"par":4,"score":5,"putts":2,"fairway":"miss_right"}`
		rec, _ = doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/holes", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("record hole %d: expected 200, got %d (%s)", hole, rec.Code, rec.Body.String())
		}
	}

	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete round: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ = envelope["data"].(map[string]any)
	insights, _ := data["insights"].([]any)
	if len(insights) == 0 || len(insights) > 5 {
		t.Fatalf("unexpected insight count: %d", len(insights))
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/rounds/"+roundID+"/insights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get insights: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_ShotPreview(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/shots/preview", `{"club":"7_iron","distance":150,"target_bearing":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview shot: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].(map[string]any)
	if got, _ := data["effective_distance"].(float64); got != 165 {
		t.Fatalf("unexpected effective distance: %v", data["effective_distance"])
	}
	if got, _ := data["confidence"].(string); got != "high" {
		t.Fatalf("unexpected confidence: %v", data["confidence"])
	}
}

func TestRouter_LockedClubStatsIsOK(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/clubs/driver/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("club stats: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	data, _ := envelope["data"].(map[string]any)
	if locked, _ := data["locked"].(bool); !locked {
		t.Fatalf("expected locked stats, got %v", data)
	}
	if needed, _ := data["shots_needed"].(float64); needed != 5 {
		t.Fatalf("unexpected shots needed: %v", data["shots_needed"])
	}
}

func TestRouter_RecapBackfillJobRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recap-backfill", strings.NewReader(`{"user_ids":["user-1"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recap-backfill", strings.NewReader(`{"user_ids":["user-1"]}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with job token, got %d (%s)", rec.Code, rec.Body.String())
	}
}

