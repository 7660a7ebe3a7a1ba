package quotatrack

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-relevance/internal/platform/cache"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
	"github.com/riskibarqy/match-relevance/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 30 * time.Second
)

var errQuotaTrackTransient = crerr.New("quotatrack transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the external quota tracking service that arbitrates
// provider call budgets across processes. It satisfies the registry's
// quota tracker contract.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	cache          *cache.Store
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
		httpClient.Timeout = defaultTimeout
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		cache:          cache.NewStore(cacheTTL),
	}
}

type quotaStatusResponse struct {
	Provider  string `json:"provider"`
	Exhausted bool   `json:"exhausted"`
	Remaining int    `json:"remaining"`
	ResetsAt  string `json:"resets_at"`
}

// IsQuotaExhausted reports whether the provider's cross-process budget is
// spent. Answers are cached for a short TTL.
func (c *Client) IsQuotaExhausted(ctx context.Context, providerName string) (bool, error) {
	providerName = strings.TrimSpace(providerName)
	if providerName == "" {
		return false, crerr.New("provider name is required")
	}

	if cached, ok := c.cache.Get(ctx, providerName); ok {
		if exhausted, ok := cached.(bool); ok {
			return exhausted, nil
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "quotatrack circuit breaker rejected request", "state", c.breaker.State())
			return false, fmt.Errorf("quota tracker is temporarily unavailable: %w", err)
		}
	}

	statusURL := c.baseURL + "/v1/quota/" + url.PathEscape(providerName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return false, fmt.Errorf("build quota status request: %w", err)
	}
	c.setHeaders(req)

	raw, err := c.send(req)
	c.recordCircuitResult(err)
	if err != nil {
		return false, fmt.Errorf("fetch quota status provider=%s: %w", providerName, err)
	}

	var status quotaStatusResponse
	if err := sonic.Unmarshal(raw, &status); err != nil {
		return false, fmt.Errorf("decode quota status: %w", err)
	}

	c.cache.Set(ctx, providerName, status.Exhausted)
	return status.Exhausted, nil
}

// RecordCall reports spent provider calls. The cached status is dropped
// so the next check sees the new balance.
func (c *Client) RecordCall(ctx context.Context, providerName string, count int) error {
	providerName = strings.TrimSpace(providerName)
	if providerName == "" {
		return crerr.New("provider name is required")
	}
	if count <= 0 {
		return nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "quotatrack circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("quota tracker is temporarily unavailable: %w", err)
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`{"count":`)
	buf.B = strconv.AppendInt(buf.B, int64(count), 10)
	_, _ = buf.WriteString(`}`)

	callURL := c.baseURL + "/v1/quota/" + url.PathEscape(providerName) + "/calls"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, bytes.NewReader(buf.B))
	if err != nil {
		return fmt.Errorf("build quota call request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	_, err = c.send(req)
	c.recordCircuitResult(err)
	if err != nil {
		return fmt.Errorf("record quota call provider=%s count=%d: %w", providerName, count, err)
	}

	c.cache.Delete(ctx, providerName)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errQuotaTrackTransient, sanitizeSensitiveText(err.Error(), c.token))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errQuotaTrackTransient, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: tracker status=%d body=%s", errQuotaTrackTransient, resp.StatusCode, abbreviateBody(raw))
	}
	return nil, fmt.Errorf("tracker status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errQuotaTrackTransient)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
