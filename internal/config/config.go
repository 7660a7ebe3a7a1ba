package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-relevance/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                            string
	ServiceName                       string
	ServiceVersion                    string
	HTTPAddr                          string
	DBURL                             string
	DBDisablePreparedBinary           bool
	CORSAllowedOrigins                []string
	ReadTimeout                       time.Duration
	WriteTimeout                      time.Duration
	PprofEnabled                      bool
	PprofAddr                         string
	UptraceEnabled                    bool
	UptraceDSN                        string
	UptraceLogsEnabled                bool
	UptraceCaptureRequestBody         bool
	UptraceRequestBodyMaxBytes        int
	PyroscopeEnabled                  bool
	PyroscopeServerAddress            string
	PyroscopeAppName                  string
	PyroscopeAuthToken                string
	PyroscopeBasicAuthUser            string
	PyroscopeBasicAuthPassword        string
	PyroscopeUploadRate               time.Duration
	APIFootballEnabled                bool
	APIFootballBaseURL                string
	APIFootballAPIKey                 string
	APIFootballTimeout                time.Duration
	APIFootballMaxRetries             int
	APIFootballCircuitEnabled         bool
	APIFootballCircuitFailureCount    int
	APIFootballCircuitOpenTimeout     time.Duration
	APIFootballCircuitHalfOpenMaxReq  int
	FootballDataEnabled               bool
	FootballDataBaseURL               string
	FootballDataToken                 string
	FootballDataTimeout               time.Duration
	FootballDataMaxRetries            int
	FootballDataCircuitEnabled        bool
	FootballDataCircuitFailureCount   int
	FootballDataCircuitOpenTimeout    time.Duration
	FootballDataCircuitHalfOpenMaxReq int
	SportsDBEnabled                   bool
	SportsDBBaseURL                   string
	SportsDBAPIKey                    string
	SportsDBTimeout                   time.Duration
	SportsDBMaxRetries                int
	SportsDBCircuitEnabled            bool
	SportsDBCircuitFailureCount       int
	SportsDBCircuitOpenTimeout        time.Duration
	SportsDBCircuitHalfOpenMaxReq     int
	QuotaTrackEnabled                 bool
	QuotaTrackBaseURL                 string
	QuotaTrackToken                   string
	QuotaTrackTimeout                 time.Duration
	QuotaTrackCacheTTL                time.Duration
	QuotaTrackCircuitEnabled          bool
	QuotaTrackCircuitFailureCount     int
	QuotaTrackCircuitOpenTimeout      time.Duration
	QuotaTrackCircuitHalfOpenMaxReq   int
	ProviderHealthTTL                 time.Duration
	AggregatorWorkers                 int
	SelectorDetailFanout              int
	LogLevel                          logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
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

	apiFootballEnabled, err := strconv.ParseBool(getEnv("APIFOOTBALL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_ENABLED: %w", err)
	}
	apiFootballTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_TIMEOUT: %w", err)
	}
	if apiFootballTimeout <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_TIMEOUT must be > 0")
	}
	apiFootballMaxRetries, err := getEnvAsInt("APIFOOTBALL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_MAX_RETRIES: %w", err)
	}
	if apiFootballMaxRetries < 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_MAX_RETRIES must be >= 0")
	}
	apiFootballCircuitEnabled, err := strconv.ParseBool(getEnv("APIFOOTBALL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_ENABLED: %w", err)
	}
	apiFootballCircuitFailureCount, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if apiFootballCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	apiFootballCircuitOpenTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if apiFootballCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	apiFootballCircuitHalfOpenMaxReq, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if apiFootballCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	apiFootballBaseURL := strings.TrimSpace(getEnv("APIFOOTBALL_BASE_URL", "https://apiv3.apifootball.com"))
	apiFootballAPIKey := strings.TrimSpace(getEnv("APIFOOTBALL_API_KEY", ""))
	if apiFootballEnabled && apiFootballAPIKey == "" {
		return Config{}, fmt.Errorf("APIFOOTBALL_API_KEY is required when APIFOOTBALL_ENABLED=true")
	}

	footballDataEnabled, err := strconv.ParseBool(getEnv("FOOTBALLDATA_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_ENABLED: %w", err)
	}
	footballDataTimeout, err := time.ParseDuration(getEnv("FOOTBALLDATA_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_TIMEOUT: %w", err)
	}
	if footballDataTimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALLDATA_TIMEOUT must be > 0")
	}
	footballDataMaxRetries, err := getEnvAsInt("FOOTBALLDATA_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_MAX_RETRIES: %w", err)
	}
	if footballDataMaxRetries < 0 {
		return Config{}, fmt.Errorf("FOOTBALLDATA_MAX_RETRIES must be >= 0")
	}
	footballDataCircuitEnabled, err := strconv.ParseBool(getEnv("FOOTBALLDATA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_CIRCUIT_ENABLED: %w", err)
	}
	footballDataCircuitFailureCount, err := getEnvAsInt("FOOTBALLDATA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if footballDataCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FOOTBALLDATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	footballDataCircuitOpenTimeout, err := time.ParseDuration(getEnv("FOOTBALLDATA_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if footballDataCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALLDATA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	footballDataCircuitHalfOpenMaxReq, err := getEnvAsInt("FOOTBALLDATA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALLDATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if footballDataCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FOOTBALLDATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	footballDataBaseURL := strings.TrimSpace(getEnv("FOOTBALLDATA_BASE_URL", "https://api.football-data.org/v4"))
	footballDataToken := strings.TrimSpace(getEnv("FOOTBALLDATA_TOKEN", ""))
	if footballDataEnabled && footballDataToken == "" {
		return Config{}, fmt.Errorf("FOOTBALLDATA_TOKEN is required when FOOTBALLDATA_ENABLED=true")
	}

	sportsDBEnabled, err := strconv.ParseBool(getEnv("SPORTSDB_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_ENABLED: %w", err)
	}
	sportsDBTimeout, err := time.ParseDuration(getEnv("SPORTSDB_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_TIMEOUT: %w", err)
	}
	if sportsDBTimeout <= 0 {
		return Config{}, fmt.Errorf("SPORTSDB_TIMEOUT must be > 0")
	}
	sportsDBMaxRetries, err := getEnvAsInt("SPORTSDB_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_MAX_RETRIES: %w", err)
	}
	if sportsDBMaxRetries < 0 {
		return Config{}, fmt.Errorf("SPORTSDB_MAX_RETRIES must be >= 0")
	}
	sportsDBCircuitEnabled, err := strconv.ParseBool(getEnv("SPORTSDB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_ENABLED: %w", err)
	}
	sportsDBCircuitFailureCount, err := getEnvAsInt("SPORTSDB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sportsDBCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SPORTSDB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sportsDBCircuitOpenTimeout, err := time.ParseDuration(getEnv("SPORTSDB_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sportsDBCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SPORTSDB_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sportsDBCircuitHalfOpenMaxReq, err := getEnvAsInt("SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sportsDBCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	sportsDBBaseURL := strings.TrimSpace(getEnv("SPORTSDB_BASE_URL", "https://www.thesportsdb.com/api/v1/json"))
	sportsDBAPIKey := strings.TrimSpace(getEnv("SPORTSDB_API_KEY", "3"))

	quotaTrackEnabled, err := strconv.ParseBool(getEnv("QUOTATRACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUOTATRACK_ENABLED: %w", err)
	}
	quotaTrackTimeout, err := time.ParseDuration(getEnv("QUOTATRACK_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUOTATRACK_TIMEOUT: %w", err)
	}
	if quotaTrackTimeout <= 0 {
		return Config{}, fmt.Errorf("QUOTATRACK_TIMEOUT must be > 0")
	}
	quotaTrackCacheTTL, err := time.ParseDuration(getEnv("QUOTATRACK_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUOTATRACK_CACHE_TTL: %w", err)
	}
	if quotaTrackCacheTTL <= 0 {
		return Config{}, fmt.Errorf("QUOTATRACK_CACHE_TTL must be > 0")
	}
	quotaTrackCircuitEnabled, err := strconv.ParseBool(getEnv("QUOTATRACK_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUOTATRACK_CIRCUIT_ENABLED: %w", err)
	}
	quotaTrackCircuitFailureCount, err := getEnvAsInt("QUOTATRACK_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUOTATRACK_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if quotaTrackCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("QUOTATRACK_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	quotaTrackCircuitOpenTimeout, err := time.ParseDuration(getEnv("QUOTATRACK_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUOTATRACK_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if quotaTrackCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("QUOTATRACK_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	quotaTrackCircuitHalfOpenMaxReq, err := getEnvAsInt("QUOTATRACK_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse QUOTATRACK_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if quotaTrackCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("QUOTATRACK_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	quotaTrackBaseURL := strings.TrimSpace(getEnv("QUOTATRACK_BASE_URL", "http://localhost:8082"))
	quotaTrackToken := strings.TrimSpace(getEnv("QUOTATRACK_TOKEN", ""))
	if quotaTrackEnabled && quotaTrackToken == "" {
		return Config{}, fmt.Errorf("QUOTATRACK_TOKEN is required when QUOTATRACK_ENABLED=true")
	}

	providerHealthTTL, err := time.ParseDuration(getEnv("PROVIDER_HEALTH_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_HEALTH_TTL: %w", err)
	}
	if providerHealthTTL <= 0 {
		return Config{}, fmt.Errorf("PROVIDER_HEALTH_TTL must be > 0")
	}

	aggregatorWorkers, err := getEnvAsInt("AGGREGATOR_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse AGGREGATOR_WORKERS: %w", err)
	}
	if aggregatorWorkers < 1 {
		return Config{}, fmt.Errorf("AGGREGATOR_WORKERS must be >= 1")
	}

	selectorDetailFanout, err := getEnvAsInt("SELECTOR_DETAIL_FANOUT", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SELECTOR_DETAIL_FANOUT: %w", err)
	}
	if selectorDetailFanout < 1 {
		return Config{}, fmt.Errorf("SELECTOR_DETAIL_FANOUT must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg := Config{
		AppEnv:                            appEnv,
		ServiceName:                       getEnv("APP_SERVICE_NAME", "match-relevance-api"),
		ServiceVersion:                    getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                          getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                             strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:           dbDisablePreparedBinary,
		CORSAllowedOrigins:                splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                       readTimeout,
		WriteTimeout:                      writeTimeout,
		PprofEnabled:                      pprofEnabled,
		PprofAddr:                         pprofAddr,
		UptraceEnabled:                    uptraceEnabled,
		UptraceDSN:                        uptraceDSN,
		UptraceLogsEnabled:                uptraceLogsEnabled,
		UptraceCaptureRequestBody:         uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes:        uptraceRequestBodyMaxBytes,
		PyroscopeEnabled:                  pyroscopeEnabled,
		PyroscopeServerAddress:            pyroscopeServerAddress,
		PyroscopeAuthToken:                strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:            strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:        strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:               pyroscopeUploadRate,
		APIFootballEnabled:                apiFootballEnabled,
		APIFootballBaseURL:                apiFootballBaseURL,
		APIFootballAPIKey:                 apiFootballAPIKey,
		APIFootballTimeout:                apiFootballTimeout,
		APIFootballMaxRetries:             apiFootballMaxRetries,
		APIFootballCircuitEnabled:         apiFootballCircuitEnabled,
		APIFootballCircuitFailureCount:    apiFootballCircuitFailureCount,
		APIFootballCircuitOpenTimeout:     apiFootballCircuitOpenTimeout,
		APIFootballCircuitHalfOpenMaxReq:  apiFootballCircuitHalfOpenMaxReq,
		FootballDataEnabled:               footballDataEnabled,
		FootballDataBaseURL:               footballDataBaseURL,
		FootballDataToken:                 footballDataToken,
		FootballDataTimeout:               footballDataTimeout,
		FootballDataMaxRetries:            footballDataMaxRetries,
		FootballDataCircuitEnabled:        footballDataCircuitEnabled,
		FootballDataCircuitFailureCount:   footballDataCircuitFailureCount,
		FootballDataCircuitOpenTimeout:    footballDataCircuitOpenTimeout,
		FootballDataCircuitHalfOpenMaxReq: footballDataCircuitHalfOpenMaxReq,
		SportsDBEnabled:                   sportsDBEnabled,
		SportsDBBaseURL:                   sportsDBBaseURL,
		SportsDBAPIKey:                    sportsDBAPIKey,
		SportsDBTimeout:                   sportsDBTimeout,
		SportsDBMaxRetries:                sportsDBMaxRetries,
		SportsDBCircuitEnabled:            sportsDBCircuitEnabled,
		SportsDBCircuitFailureCount:       sportsDBCircuitFailureCount,
		SportsDBCircuitOpenTimeout:        sportsDBCircuitOpenTimeout,
		SportsDBCircuitHalfOpenMaxReq:     sportsDBCircuitHalfOpenMaxReq,
		QuotaTrackEnabled:                 quotaTrackEnabled,
		QuotaTrackBaseURL:                 quotaTrackBaseURL,
		QuotaTrackToken:                   quotaTrackToken,
		QuotaTrackTimeout:                 quotaTrackTimeout,
		QuotaTrackCacheTTL:                quotaTrackCacheTTL,
		QuotaTrackCircuitEnabled:          quotaTrackCircuitEnabled,
		QuotaTrackCircuitFailureCount:     quotaTrackCircuitFailureCount,
		QuotaTrackCircuitOpenTimeout:      quotaTrackCircuitOpenTimeout,
		QuotaTrackCircuitHalfOpenMaxReq:   quotaTrackCircuitHalfOpenMaxReq,
		ProviderHealthTTL:                 providerHealthTTL,
		AggregatorWorkers:                 aggregatorWorkers,
		SelectorDetailFanout:              selectorDetailFanout,
		LogLevel:                          logLevel,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if !cfg.APIFootballEnabled && !cfg.FootballDataEnabled && !cfg.SportsDBEnabled {
		return Config{}, fmt.Errorf("at least one fixture provider must be enabled")
	}

	return cfg, nil
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
