package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/birdielabs/caddie-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	DBURL                         string
	DBDisablePreparedBinaryResult bool

	CacheTTL                 time.Duration
	ElevationCacheTTL        time.Duration
	ElevationCacheMaxEntries int

	AuthStaticTokens map[string]string

	WeatherBaseURL               string
	WeatherTimeout               time.Duration
	WeatherMaxRetries            int
	WeatherCircuitEnabled        bool
	WeatherCircuitFailureCount   int
	WeatherCircuitOpenTimeout    time.Duration
	WeatherCircuitHalfOpenMaxReq int

	CatalogBaseURL               string
	CatalogAPIKey                string
	CatalogTimeout               time.Duration
	CatalogMaxRetries            int
	CatalogCircuitEnabled        bool
	CatalogCircuitFailureCount   int
	CatalogCircuitOpenTimeout    time.Duration
	CatalogCircuitHalfOpenMaxReq int

	InternalJobToken string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_READ_TIMEOUT must be > 0")
	}

	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_WRITE_TIMEOUT must be > 0")
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	elevationCacheTTL, err := time.ParseDuration(getEnv("ELEVATION_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ELEVATION_CACHE_TTL: %w", err)
	}
	if elevationCacheTTL <= 0 {
		return Config{}, fmt.Errorf("ELEVATION_CACHE_TTL must be > 0")
	}

	elevationCacheMaxEntries, err := getEnvAsInt("ELEVATION_CACHE_MAX_ENTRIES", 4096)
	if err != nil {
		return Config{}, fmt.Errorf("parse ELEVATION_CACHE_MAX_ENTRIES: %w", err)
	}
	if elevationCacheMaxEntries < 1 {
		return Config{}, fmt.Errorf("ELEVATION_CACHE_MAX_ENTRIES must be >= 1")
	}

	authStaticTokens, err := parseTokenMap(getEnv("AUTH_STATIC_TOKENS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_STATIC_TOKENS: %w", err)
	}

	weatherTimeout, err := time.ParseDuration(getEnv("WEATHER_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WEATHER_TIMEOUT: %w", err)
	}
	weatherMaxRetries, err := getEnvAsInt("WEATHER_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse WEATHER_MAX_RETRIES: %w", err)
	}
	if weatherMaxRetries < 0 {
		return Config{}, fmt.Errorf("WEATHER_MAX_RETRIES must be >= 0")
	}
	weatherCircuitEnabled, err := strconv.ParseBool(getEnv("WEATHER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WEATHER_CIRCUIT_ENABLED: %w", err)
	}
	weatherCircuitFailureCount, err := getEnvAsInt("WEATHER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse WEATHER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if weatherCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("WEATHER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	weatherCircuitOpenTimeout, err := time.ParseDuration(getEnv("WEATHER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WEATHER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if weatherCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("WEATHER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	weatherCircuitHalfOpenMaxReq, err := getEnvAsInt("WEATHER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse WEATHER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if weatherCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("WEATHER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	catalogAPIKey := strings.TrimSpace(getEnv("CATALOG_API_KEY", ""))
	catalogTimeout, err := time.ParseDuration(getEnv("CATALOG_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_TIMEOUT: %w", err)
	}
	catalogMaxRetries, err := getEnvAsInt("CATALOG_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_MAX_RETRIES: %w", err)
	}
	if catalogMaxRetries < 0 {
		return Config{}, fmt.Errorf("CATALOG_MAX_RETRIES must be >= 0")
	}
	catalogCircuitEnabled, err := strconv.ParseBool(getEnv("CATALOG_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_ENABLED: %w", err)
	}
	catalogCircuitFailureCount, err := getEnvAsInt("CATALOG_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if catalogCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("CATALOG_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	catalogCircuitOpenTimeout, err := time.ParseDuration(getEnv("CATALOG_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if catalogCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CATALOG_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	catalogCircuitHalfOpenMaxReq, err := getEnvAsInt("CATALOG_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if catalogCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("CATALOG_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	dbDisablePreparedBinaryResult, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "caddie-api"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		DBURL:                         strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinaryResult: dbDisablePreparedBinaryResult,

		CacheTTL:                 cacheTTL,
		ElevationCacheTTL:        elevationCacheTTL,
		ElevationCacheMaxEntries: elevationCacheMaxEntries,

		AuthStaticTokens: authStaticTokens,

		WeatherBaseURL:               strings.TrimSpace(getEnv("WEATHER_BASE_URL", "")),
		WeatherTimeout:               weatherTimeout,
		WeatherMaxRetries:            weatherMaxRetries,
		WeatherCircuitEnabled:        weatherCircuitEnabled,
		WeatherCircuitFailureCount:   weatherCircuitFailureCount,
		WeatherCircuitOpenTimeout:    weatherCircuitOpenTimeout,
		WeatherCircuitHalfOpenMaxReq: weatherCircuitHalfOpenMaxReq,

		CatalogBaseURL:               strings.TrimSpace(getEnv("CATALOG_BASE_URL", "")),
		CatalogAPIKey:                catalogAPIKey,
		CatalogTimeout:               catalogTimeout,
		CatalogMaxRetries:            catalogMaxRetries,
		CatalogCircuitEnabled:        catalogCircuitEnabled,
		CatalogCircuitFailureCount:   catalogCircuitFailureCount,
		CatalogCircuitOpenTimeout:    catalogCircuitOpenTimeout,
		CatalogCircuitHalfOpenMaxReq: catalogCircuitHalfOpenMaxReq,

		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "caddie-api"),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		PprofEnabled: pprofEnabled,
		PprofAddr:    getEnv("PPROF_ADDR", "localhost:6060"),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseTokenMap parses "token:user_id,token:user_id" pairs used by the
// static dev verifier.
func parseTokenMap(raw string) (map[string]string, error) {
	out := make(map[string]string)
	parts := strings.Split(raw, ",")
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected token:user_id", item)
		}

		token := strings.TrimSpace(segments[0])
		userID := strings.TrimSpace(segments[1])
		if token == "" || userID == "" {
			return nil, fmt.Errorf("empty token or user id in item %q", item)
		}
		out[token] = userID
	}
	return out, nil
}
