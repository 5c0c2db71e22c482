package golfcourseapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/birdielabs/caddie-api/internal/domain/course"
	"github.com/birdielabs/caddie-api/internal/platform/logging"
	"github.com/birdielabs/caddie-api/internal/platform/resilience"
	"github.com/birdielabs/caddie-api/internal/usecase"
)

const (
	defaultBaseURL         = "https://api.golfcourseapi.com/v1"
	responseBodyLimitBytes = 4 << 20
)

var errCatalogTransient = crerr.New("course catalog transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the third-party golf-course directory. It satisfies
// usecase.CourseCatalog.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type courseModel struct {
	ID        string  `json:"id"`
	Name      string  `json:"course_name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Tees      []struct {
		Name       string  `json:"tee_name"`
		Color      string  `json:"tee_color"`
		TotalYards int     `json:"total_yards"`
		Rating     float64 `json:"course_rating"`
		Slope      int     `json:"slope_rating"`
	} `json:"tees"`
	Holes []struct {
		Number int `json:"hole_number"`
		Par    int `json:"par"`
		Yards  int `json:"yards"`
	} `json:"holes"`
}

type searchEnvelope struct {
	Courses []courseModel `json:"courses"`
}

type courseEnvelope struct {
	Course courseModel `json:"course"`
}

func (c *Client) Search(ctx context.Context, query string) ([]course.Course, error) {
	values := url.Values{}
	values.Set("search_query", query)

	var envelope searchEnvelope
	if err := c.doJSON(ctx, "/search", values, &envelope); err != nil {
		return nil, err
	}

	out := make([]course.Course, 0, len(envelope.Courses))
	for _, item := range envelope.Courses {
		out = append(out, mapCourse(item))
	}
	return out, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (course.Course, bool, error) {
	var envelope courseEnvelope
	if err := c.doJSON(ctx, "/courses/"+url.PathEscape(id), nil, &envelope); err != nil {
		if stderrors.Is(err, errCatalogNotFound) {
			return course.Course{}, false, nil
		}
		return course.Course{}, false, err
	}
	return mapCourse(envelope.Course), true, nil
}

var errCatalogNotFound = crerr.New("course catalog entry not found")

func (c *Client) doJSON(ctx context.Context, path string, values url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "course catalog circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: course catalog is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if values != nil {
		if encoded := values.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errCatalogTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode catalog payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Key "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errCatalogTransient, err)
		} else {
			raw, readErr := readBodyPooled(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errCatalogTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, errCatalogNotFound
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: catalog status=%d", errCatalogTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("catalog status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("catalog request failed")
	}
	c.logger.WarnContext(ctx, "course catalog request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBodyPooled drains the body through a pooled buffer so repeated
// catalog calls do not reallocate large byte slices.
func readBodyPooled(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, responseBodyLimitBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func mapCourse(item courseModel) course.Course {
	out := course.Course{
		ID:        item.ID,
		Name:      item.Name,
		City:      item.City,
		State:     item.State,
		Latitude:  item.Latitude,
		Longitude: item.Longitude,
	}
	for _, tee := range item.Tees {
		out.Tees = append(out.Tees, course.Tee{
			Name:       tee.Name,
			Color:      tee.Color,
			TotalYards: tee.TotalYards,
			Rating:     tee.Rating,
			Slope:      tee.Slope,
		})
	}
	for _, hole := range item.Holes {
		out.Holes = append(out.Holes, course.Hole{
			Number: hole.Number,
			Par:    hole.Par,
			Yards:  hole.Yards,
		})
	}
	return out
}
