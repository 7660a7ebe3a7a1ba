package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-relevance/internal/domain/match"
	"github.com/riskibarqy/match-relevance/internal/domain/provider"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
	"github.com/riskibarqy/match-relevance/internal/platform/resilience"
	"github.com/riskibarqy/match-relevance/internal/usecase"
)

const (
	defaultBaseURL = "https://apiv3.apifootball.com"
	providerName   = "apifootball"
	dateLayout     = "2006-01-02"
)

var apiKeyParamRegex = regexp.MustCompile(`APIkey=[^&\s"']+`)
var errAPIFootballTransient = crerr.New("apifootball transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the apifootball events API. It implements the fixture
// and head-to-head provider contracts.
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
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) Name() string { return providerName }

// FetchFixtures returns normalized matches for the inclusive UTC date
// range. Both bounds collapse to their calendar day.
func (c *Client) FetchFixtures(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	query := map[string]string{
		"action": "get_events",
		"from":   from.UTC().Format(dateLayout),
		"to":     to.UTC().Format(dateLayout),
	}

	var events []eventItem
	if err := c.doJSON(ctx, query, &events); err != nil {
		return nil, provider.NewError(providerName, fmt.Errorf("fetch events from=%s to=%s: %w", query["from"], query["to"], err))
	}

	return mapEvents(events), nil
}

// FetchHeadToHead returns prior direct meetings between the two teams.
// The provider wants its own numeric team IDs; callers holding canonical
// matches sourced here can pass them straight through.
func (c *Client) FetchHeadToHead(ctx context.Context, home, away match.Team) ([]match.Match, error) {
	if strings.TrimSpace(home.ID) == "" || strings.TrimSpace(away.ID) == "" {
		return nil, fmt.Errorf("%w: head-to-head needs both team ids", usecase.ErrInvalidInput)
	}

	query := map[string]string{
		"action":       "get_H2H",
		"firstTeamId":  strings.TrimSpace(home.ID),
		"secondTeamId": strings.TrimSpace(away.ID),
	}

	var envelope headToHeadEnvelope
	if err := c.doJSON(ctx, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch head-to-head home=%s away=%s: %w", home.ID, away.ID, err)
	}

	return mapEvents(envelope.FirstVsSecond), nil
}

func (c *Client) doJSON(ctx context.Context, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "apifootball circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: match data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("APIkey", c.apiKey)

	fullURL := c.baseURL + "/?" + values.Encode()

	key := values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
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

	// Errors come back as a JSON object even with HTTP 200.
	if looksLikeErrorObject(raw) {
		return fmt.Errorf("provider error payload: %s", abbreviateBody(raw))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
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
			lastErr = fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errAPIFootballTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "apifootball request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func looksLikeErrorObject(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{") && strings.Contains(trimmed, "\"error\"")
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "APIkey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("APIkey") {
		query.Set("APIkey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errAPIFootballTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
