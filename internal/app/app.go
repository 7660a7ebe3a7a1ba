package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/match-relevance/external/apifootball"
	"github.com/riskibarqy/match-relevance/external/footballdata"
	"github.com/riskibarqy/match-relevance/external/quotatrack"
	"github.com/riskibarqy/match-relevance/external/sportsdb"
	"github.com/riskibarqy/match-relevance/internal/config"
	"github.com/riskibarqy/match-relevance/internal/domain/channel"
	"github.com/riskibarqy/match-relevance/internal/domain/provider"
	"github.com/riskibarqy/match-relevance/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-relevance/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-relevance/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
	"github.com/riskibarqy/match-relevance/internal/platform/resilience"
	"github.com/riskibarqy/match-relevance/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		channelRepo channel.Repository
		credRepo    provider.CredentialRepository
	)
	if strings.TrimSpace(cfg.DBURL) != "" {
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		channelRepo = postgres.NewChannelRepository(db)
		credRepo = postgres.NewCredentialRepository(db)
	} else {
		logger.Info("DB_URL empty, using in-memory repositories")
		channelRepo = memory.NewChannelRepository(memory.SeedChannels())
		credRepo = memory.NewCredentialRepository(memory.SeedCredentials())
	}

	var quota provider.QuotaTracker
	if cfg.QuotaTrackEnabled {
		quota = quotatrack.NewClient(quotatrack.ClientConfig{
			BaseURL:  cfg.QuotaTrackBaseURL,
			Token:    cfg.QuotaTrackToken,
			Timeout:  cfg.QuotaTrackTimeout,
			CacheTTL: cfg.QuotaTrackCacheTTL,
			Logger:   logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QuotaTrackCircuitEnabled,
				FailureThreshold: cfg.QuotaTrackCircuitFailureCount,
				OpenTimeout:      cfg.QuotaTrackCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QuotaTrackCircuitHalfOpenMaxReq,
			},
		})
	}

	creds, err := credRepo.ListCredentials(context.Background())
	if err != nil {
		logger.Warn("list provider credentials failed, using configured defaults", "error", err)
		creds = nil
	}
	creds = ensureSportsDBCredential(cfg, creds)

	registered := make([]usecase.RegisteredProvider, 0, len(creds))
	for _, cred := range creds {
		fetcher := buildFixtureProvider(cfg, cred, logger)
		if fetcher == nil {
			continue
		}
		registered = append(registered, usecase.RegisteredProvider{Credential: cred, Fetcher: fetcher})
	}

	var (
		fallback usecase.FixtureProvider
		details  usecase.TeamDetailProvider
	)
	if cfg.SportsDBEnabled {
		sportsDB := newSportsDBClient(cfg, provider.Credential{}, logger)
		fallback = sportsDB
		details = sportsDB
	}

	var headToHead usecase.HeadToHeadProvider
	if cfg.APIFootballEnabled {
		headToHead = newAPIFootballClient(cfg, provider.Credential{}, logger)
	}

	registry := usecase.NewProviderRegistry(registered, quota, logger,
		usecase.WithHealthTTL(cfg.ProviderHealthTTL))
	aggregator := usecase.NewAggregatorService(registry, fallback, logger,
		usecase.WithAggregatorWorkers(cfg.AggregatorWorkers))
	selector := usecase.NewMatchSelector(aggregator, registry, channelRepo, details, headToHead, logger,
		usecase.WithDetailFanout(cfg.SelectorDetailFanout))

	handler := httpapi.NewHandler(selector, registry, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// ensureSportsDBCredential keeps the free-tier provider registered even
// when the credential store has no row for it.
func ensureSportsDBCredential(cfg config.Config, creds []provider.Credential) []provider.Credential {
	if !cfg.SportsDBEnabled {
		return creds
	}
	for _, cred := range creds {
		if cred.Name == "sportsdb" {
			return creds
		}
	}

	return append(creds, provider.Credential{
		Name:     "sportsdb",
		APIKey:   cfg.SportsDBAPIKey,
		BaseURL:  cfg.SportsDBBaseURL,
		Priority: 99,
		IsActive: true,
	})
}

func buildFixtureProvider(cfg config.Config, cred provider.Credential, logger *logging.Logger) usecase.FixtureProvider {
	switch cred.Name {
	case "apifootball":
		if !cfg.APIFootballEnabled {
			return nil
		}
		return newAPIFootballClient(cfg, cred, logger)
	case "footballdata":
		if !cfg.FootballDataEnabled {
			return nil
		}
		return newFootballDataClient(cfg, cred, logger)
	case "sportsdb":
		if !cfg.SportsDBEnabled {
			return nil
		}
		return newSportsDBClient(cfg, cred, logger)
	default:
		logger.Warn("unknown provider credential ignored", "provider", cred.Name)
		return nil
	}
}

func newAPIFootballClient(cfg config.Config, cred provider.Credential, logger *logging.Logger) *apifootball.Client {
	return apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    firstNonEmpty(cred.BaseURL, cfg.APIFootballBaseURL),
		APIKey:     firstNonEmpty(cred.APIKey, cfg.APIFootballAPIKey),
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})
}

func newFootballDataClient(cfg config.Config, cred provider.Credential, logger *logging.Logger) *footballdata.Client {
	return footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:    firstNonEmpty(cred.BaseURL, cfg.FootballDataBaseURL),
		Token:      firstNonEmpty(cred.APIKey, cfg.FootballDataToken),
		Timeout:    cfg.FootballDataTimeout,
		MaxRetries: cfg.FootballDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})
}

func newSportsDBClient(cfg config.Config, cred provider.Credential, logger *logging.Logger) *sportsdb.Client {
	return sportsdb.NewClient(sportsdb.ClientConfig{
		BaseURL:    firstNonEmpty(cred.BaseURL, cfg.SportsDBBaseURL),
		APIKey:     firstNonEmpty(cred.APIKey, cfg.SportsDBAPIKey),
		Timeout:    cfg.SportsDBTimeout,
		MaxRetries: cfg.SportsDBMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SportsDBCircuitEnabled,
			FailureThreshold: cfg.SportsDBCircuitFailureCount,
			OpenTimeout:      cfg.SportsDBCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SportsDBCircuitHalfOpenMaxReq,
		},
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
