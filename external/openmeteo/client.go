package openmeteo

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/birdielabs/caddie-api/internal/domain/weather"
	"github.com/birdielabs/caddie-api/internal/platform/logging"
	"github.com/birdielabs/caddie-api/internal/platform/resilience"
	"github.com/birdielabs/caddie-api/internal/usecase"
)

const (
	defaultForecastBaseURL = "https://api.open-meteo.com/v1"
	currentFields          = "temperature_2m,apparent_temperature,relative_humidity_2m,precipitation,weather_code,wind_speed_10m,wind_direction_10m,wind_gusts_10m"
	hourlyFields           = "temperature_2m,wind_speed_10m,precipitation_probability,weather_code"
	forecastHours          = 12
	metersToFeet           = 3.28084
	responseBodyLimitBytes = 2 << 20
)

var errOpenMeteoTransient = crerr.New("open-meteo transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches current conditions, hourly forecast, and terrain elevation
// from the Open-Meteo public API. It satisfies usecase.WeatherProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
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
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultForecastBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type forecastEnvelope struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		ApparentTemp  float64 `json:"apparent_temperature"`
		Humidity      float64 `json:"relative_humidity_2m"`
		Precipitation float64 `json:"precipitation"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
		WindGusts     float64 `json:"wind_gusts_10m"`
	} `json:"current"`
	Hourly struct {
		Time         []string  `json:"time"`
		Temperature  []float64 `json:"temperature_2m"`
		WindSpeed    []float64 `json:"wind_speed_10m"`
		PrecipProb   []float64 `json:"precipitation_probability"`
		WeatherCodes []int     `json:"weather_code"`
	} `json:"hourly"`
}

type elevationEnvelope struct {
	Elevation []float64 `json:"elevation"`
}

func (c *Client) Current(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	query := map[string]string{
		"latitude":           formatCoord(lat),
		"longitude":          formatCoord(lon),
		"current":            currentFields,
		"hourly":             hourlyFields,
		"forecast_hours":     strconv.Itoa(forecastHours),
		"temperature_unit":   "fahrenheit",
		"wind_speed_unit":    "mph",
		"precipitation_unit": "inch",
		"timezone":           "UTC",
	}

	var envelope forecastEnvelope
	if err := c.doJSON(ctx, "/forecast", query, &envelope); err != nil {
		return weather.Snapshot{}, err
	}

	snapshot := weather.Snapshot{
		Current: weather.Current{
			TempF:         envelope.Current.Temperature,
			FeelsLikeF:    envelope.Current.ApparentTemp,
			Condition:     conditionFromCode(envelope.Current.WeatherCode),
			Humidity:      envelope.Current.Humidity,
			Precipitation: envelope.Current.Precipitation,
			Wind: weather.Wind{
				SpeedMPH:  envelope.Current.WindSpeed,
				Direction: compassFromDegrees(envelope.Current.WindDirection),
				GustsMPH:  envelope.Current.WindGusts,
			},
		},
	}

	for i, stamp := range envelope.Hourly.Time {
		parsed, err := time.Parse("2006-01-02T15:04", stamp)
		if err != nil {
			continue
		}
		entry := weather.ForecastEntry{Time: parsed}
		if i < len(envelope.Hourly.Temperature) {
			entry.TempF = envelope.Hourly.Temperature[i]
		}
		if i < len(envelope.Hourly.WindSpeed) {
			entry.WindMPH = envelope.Hourly.WindSpeed[i]
		}
		if i < len(envelope.Hourly.PrecipProb) {
			entry.PrecipPct = envelope.Hourly.PrecipProb[i]
		}
		if i < len(envelope.Hourly.WeatherCodes) {
			entry.Icon = iconFromCode(envelope.Hourly.WeatherCodes[i])
		}
		snapshot.Forecast = append(snapshot.Forecast, entry)
	}

	return snapshot, nil
}

// Elevation returns the terrain altitude in feet above sea level.
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	query := map[string]string{
		"latitude":  formatCoord(lat),
		"longitude": formatCoord(lon),
	}

	var envelope elevationEnvelope
	if err := c.doJSON(ctx, "/elevation", query, &envelope); err != nil {
		return 0, err
	}
	if len(envelope.Elevation) == 0 {
		return 0, fmt.Errorf("elevation response is empty")
	}
	return envelope.Elevation[0] * metersToFeet, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "open-meteo circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: weather provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isOpenMeteoCircuitFailure(reqErr) {
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
		return fmt.Errorf("decode weather payload: %w", err)
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

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errOpenMeteoTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimitBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errOpenMeteoTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d", errOpenMeteoTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
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
		lastErr = fmt.Errorf("weather request failed")
	}
	c.logger.WarnContext(ctx, "open-meteo request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isOpenMeteoCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errOpenMeteoTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

var compassNames = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func compassFromDegrees(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/22.5)) % len(compassNames)
	return compassNames[idx]
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WMO weather interpretation codes, grouped coarsely.
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 3:
		return "Partly Cloudy"
	case code <= 48:
		return "Fog"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain Showers"
	case code <= 86:
		return "Snow Showers"
	default:
		return "Thunderstorm"
	}
}

func iconFromCode(code int) string {
	switch {
	case code == 0:
		return "sun"
	case code <= 3:
		return "cloud-sun"
	case code <= 48:
		return "fog"
	case code <= 67:
		return "rain"
	case code <= 86:
		return "snow"
	default:
		return "storm"
	}
}
