package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_APIFootballRequiresKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APIFOOTBALL_ENABLED", "true")
	t.Setenv("APIFOOTBALL_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APIFOOTBALL_ENABLED=true without APIFOOTBALL_API_KEY")
	}
}

func TestLoad_FootballDataRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("FOOTBALLDATA_ENABLED", "true")
	t.Setenv("FOOTBALLDATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FOOTBALLDATA_ENABLED=true without FOOTBALLDATA_TOKEN")
	}
}

func TestLoad_ProviderConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APIFOOTBALL_ENABLED", "true")
	t.Setenv("APIFOOTBALL_API_KEY", "key-123")
	t.Setenv("APIFOOTBALL_TIMEOUT", "7s")
	t.Setenv("APIFOOTBALL_MAX_RETRIES", "2")
	t.Setenv("APIFOOTBALL_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.APIFootballEnabled {
		t.Fatalf("expected APIFootballEnabled=true")
	}
	if cfg.APIFootballAPIKey != "key-123" {
		t.Fatalf("unexpected APIFootballAPIKey")
	}
	if cfg.APIFootballTimeout != 7*time.Second {
		t.Fatalf("unexpected APIFootballTimeout: %s", cfg.APIFootballTimeout)
	}
	if cfg.APIFootballMaxRetries != 2 {
		t.Fatalf("unexpected APIFootballMaxRetries: %d", cfg.APIFootballMaxRetries)
	}
	if cfg.APIFootballCircuitFailureCount != 3 {
		t.Fatalf("unexpected APIFootballCircuitFailureCount: %d", cfg.APIFootballCircuitFailureCount)
	}
}

func TestLoad_SportsDBEnabledByDefault(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.SportsDBEnabled {
		t.Fatalf("expected SportsDBEnabled=true by default")
	}
	if cfg.SportsDBAPIKey != "3" {
		t.Fatalf("expected free-tier key by default, got %q", cfg.SportsDBAPIKey)
	}
}

func TestLoad_RequiresAtLeastOneProvider(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APIFOOTBALL_ENABLED", "false")
	t.Setenv("FOOTBALLDATA_ENABLED", "false")
	t.Setenv("SPORTSDB_ENABLED", "false")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when every provider is disabled")
	}
}

func TestLoad_QuotaTrackRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("QUOTATRACK_ENABLED", "true")
	t.Setenv("QUOTATRACK_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QUOTATRACK_ENABLED=true without QUOTATRACK_TOKEN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_WorkerBoundsValidated(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("AGGREGATOR_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for AGGREGATOR_WORKERS=0")
	}
}
