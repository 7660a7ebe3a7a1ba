package sportsdb

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
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
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	defaultAPIKey  = "3"
	providerName   = "sportsdb"
	dateLayout     = "2006-01-02"
)

// curatedLeagueIDs limits the free feed to the competitions the scoring
// tables know about. The feed mixes every sport and minor league into one
// day listing otherwise.
var curatedLeagueIDs = map[string]struct{}{
	"4328": {}, // English Premier League
	"4331": {}, // German Bundesliga
	"4332": {}, // Italian Serie A
	"4334": {}, // French Ligue 1
	"4335": {}, // Spanish La Liga
	"4337": {}, // Dutch Eredivisie
	"4344": {}, // Portuguese Primeira Liga
	"4346": {}, // American Major League Soccer
	"4480": {}, // UEFA Champions League
	"4481": {}, // UEFA Europa League
}

var errSportsDBTransient = crerr.New("sportsdb transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the free TheSportsDB feed. It serves two roles: the
// last-resort fixture fallback and the team detail source. The key is a
// path segment on this API, not a query parameter.
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
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = defaultAPIKey
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) Name() string { return providerName }

// FetchFixtures walks the inclusive date range one day at a time, keeping
// only soccer events from the curated leagues. The free tier rate limit
// makes this strictly sequential.
func (c *Client) FetchFixtures(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	start := startOfDay(from)
	end := startOfDay(to)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: date range end before start", usecase.ErrInvalidInput)
	}

	out := make([]match.Match, 0, 32)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := map[string]string{
			"d": day.Format(dateLayout),
			"s": "Soccer",
		}

		var envelope eventsEnvelope
		if err := c.doJSON(ctx, "/eventsday.php", query, &envelope); err != nil {
			return nil, provider.NewError(providerName, fmt.Errorf("fetch events day=%s: %w", query["d"], err))
		}

		for _, item := range envelope.Events {
			if !isCuratedLeague(item.IDLeague) {
				continue
			}
			mapped, ok := mapEvent(item)
			if !ok {
				continue
			}
			out = append(out, mapped)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// FetchRecentMatches returns the team's latest finished matches, newest
// first as the feed delivers them.
func (c *Client) FetchRecentMatches(ctx context.Context, team match.Team, limit int) ([]match.Match, error) {
	teamID, err := c.resolveTeamID(ctx, team)
	if err != nil {
		return nil, err
	}

	var envelope resultsEnvelope
	if err := c.doJSON(ctx, "/eventslast.php", map[string]string{"id": teamID}, &envelope); err != nil {
		return nil, fmt.Errorf("fetch recent matches team=%s: %w", teamID, err)
	}

	return limitMatches(mapEvents(envelope.Results), limit), nil
}

// FetchUpcomingMatches returns the team's next scheduled matches.
func (c *Client) FetchUpcomingMatches(ctx context.Context, team match.Team, limit int) ([]match.Match, error) {
	teamID, err := c.resolveTeamID(ctx, team)
	if err != nil {
		return nil, err
	}

	var envelope eventsEnvelope
	if err := c.doJSON(ctx, "/eventsnext.php", map[string]string{"id": teamID}, &envelope); err != nil {
		return nil, fmt.Errorf("fetch upcoming matches team=%s: %w", teamID, err)
	}

	return limitMatches(mapEvents(envelope.Events), limit), nil
}

// resolveTeamID prefers a numeric canonical ID and falls back to a name
// search when the aggregate came from a provider with foreign IDs.
func (c *Client) resolveTeamID(ctx context.Context, team match.Team) (string, error) {
	id := strings.TrimSpace(team.ID)
	if id != "" && isDigits(id) {
		return id, nil
	}

	name := strings.TrimSpace(team.Name)
	if name == "" {
		return "", fmt.Errorf("%w: team name is required to resolve detail lookups", usecase.ErrInvalidInput)
	}

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/searchteams.php", map[string]string{"t": name}, &envelope); err != nil {
		return "", fmt.Errorf("search team %q: %w", name, err)
	}

	for _, item := range envelope.Teams {
		if strings.EqualFold(strings.TrimSpace(item.StrTeam), name) && strings.TrimSpace(item.IDTeam) != "" {
			return strings.TrimSpace(item.IDTeam), nil
		}
	}
	for _, item := range envelope.Teams {
		if strings.TrimSpace(item.IDTeam) != "" {
			return strings.TrimSpace(item.IDTeam), nil
		}
	}

	return "", fmt.Errorf("%w: team %q", usecase.ErrNotFound, name)
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sportsdb circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: match data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + "/" + c.apiKey + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
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
			lastErr = fmt.Errorf("%w: send request: %s", errSportsDBTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSportsDBTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSportsDBTransient, resp.StatusCode, abbreviateBody(raw))
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
	c.logger.WarnContext(ctx, "sportsdb request failed", "url", redactAPIURL(fullURL, c.apiKey), "error", lastErr)
	return nil, lastErr
}

func isCuratedLeague(id string) bool {
	_, ok := curatedLeagueIDs[strings.TrimSpace(id)]
	return ok
}

func limitMatches(matches []match.Match, limit int) []match.Match {
	if limit <= 0 || len(matches) <= limit {
		return matches
	}
	return matches[:limit]
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" || apiKey == defaultAPIKey {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func redactAPIURL(rawURL, apiKey string) string {
	if apiKey == "" || apiKey == defaultAPIKey {
		return rawURL
	}
	return strings.ReplaceAll(rawURL, "/"+apiKey+"/", "/REDACTED/")
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errSportsDBTransient)
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
