package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/provider"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
)

const defaultHealthTTL = 5 * time.Minute

// RegisteredProvider pairs configured credentials with the adapter built
// from them.
type RegisteredProvider struct {
	Credential provider.Credential
	Fetcher    FixtureProvider
}

// ProviderRegistry holds adapters in static priority order and tracks
// process-local health. Health marks expire on a TTL so a transient
// failure never blacklists a provider for good; quota exhaustion is
// re-checked against the external tracker on the same cadence.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers []RegisteredProvider
	health    map[string]provider.Health
	quota     provider.QuotaTracker
	healthTTL time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

type RegistryOption func(*ProviderRegistry)

func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *ProviderRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

func WithHealthTTL(ttl time.Duration) RegistryOption {
	return func(r *ProviderRegistry) {
		if ttl > 0 {
			r.healthTTL = ttl
		}
	}
}

func NewProviderRegistry(providers []RegisteredProvider, quota provider.QuotaTracker, logger *logging.Logger, opts ...RegistryOption) *ProviderRegistry {
	if logger == nil {
		logger = logging.Default()
	}

	active := make([]RegisteredProvider, 0, len(providers))
	for _, rp := range providers {
		if rp.Fetcher == nil || !rp.Credential.IsActive {
			continue
		}
		active = append(active, rp)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Credential.Priority < active[j].Credential.Priority
	})

	r := &ProviderRegistry{
		providers: active,
		health:    make(map[string]provider.Health, len(active)),
		quota:     quota,
		healthTTL: defaultHealthTTL,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Providers returns the active adapters by ascending priority.
func (r *ProviderRegistry) Providers() []RegisteredProvider {
	out := make([]RegisteredProvider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Usable reports whether a provider should be attempted right now. A
// provider marked not-working or quota-exhausted stays skipped until its
// health entry ages past the TTL.
func (r *ProviderRegistry) Usable(ctx context.Context, name string) bool {
	now := r.now()

	r.mu.RLock()
	h, known := r.health[name]
	r.mu.RUnlock()

	if known && now.Sub(h.LastCheckedAt) < r.healthTTL {
		return h.IsWorking && !h.QuotaExhausted
	}

	exhausted := false
	if r.quota != nil {
		var err error
		exhausted, err = r.quota.IsQuotaExhausted(ctx, name)
		if err != nil {
			// Quota tracker being down must not take providers with it.
			r.logger.WarnContext(ctx, "quota check failed, assuming quota available", "provider", name, "error", err)
			exhausted = false
		}
	}

	r.mu.Lock()
	r.health[name] = provider.Health{
		Name:           name,
		IsWorking:      true,
		QuotaExhausted: exhausted,
		LastCheckedAt:  now,
	}
	r.mu.Unlock()

	return !exhausted
}

// RecordOutcome updates health after a call attempt and reports the call
// to the external quota tracker so cross-process limits stay honest.
func (r *ProviderRegistry) RecordOutcome(ctx context.Context, name string, success bool) {
	now := r.now()

	r.mu.Lock()
	h := r.health[name]
	h.Name = name
	h.IsWorking = success
	h.LastCheckedAt = now
	r.health[name] = h
	r.mu.Unlock()

	if r.quota != nil {
		if err := r.quota.RecordCall(ctx, name, 1); err != nil {
			r.logger.WarnContext(ctx, "record provider call failed", "provider", name, "error", err)
		}
	}
}

// Snapshot returns the current health view for every registered provider.
func (r *ProviderRegistry) Snapshot() []provider.Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]provider.Health, 0, len(r.providers))
	for _, rp := range r.providers {
		name := rp.Credential.Name
		if h, ok := r.health[name]; ok {
			out = append(out, h)
			continue
		}
		out = append(out, provider.Health{Name: name, IsWorking: true})
	}

	return out
}
