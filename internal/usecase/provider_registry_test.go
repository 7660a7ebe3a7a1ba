package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-relevance/internal/platform/logging"
)

func TestProviderRegistry_PriorityOrderAndActiveFilter(t *testing.T) {
	t.Parallel()

	providers := []RegisteredProvider{
		{Credential: activeCredential("bravo", 2), Fetcher: &stubFixtureProvider{name: "bravo"}},
		{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}},
	}
	inactive := activeCredential("charlie", 0)
	inactive.IsActive = false
	providers = append(providers, RegisteredProvider{Credential: inactive, Fetcher: &stubFixtureProvider{name: "charlie"}})

	registry := NewProviderRegistry(providers, nil, logging.NewNop())

	got := registry.Providers()
	if len(got) != 2 {
		t.Fatalf("active provider count: got=%d want=%d", len(got), 2)
	}
	if got[0].Credential.Name != "alpha" || got[1].Credential.Name != "bravo" {
		t.Fatalf("priority order: got=[%s %s] want=[alpha bravo]", got[0].Credential.Name, got[1].Credential.Name)
	}
}

func TestProviderRegistry_FailureExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	registry := NewProviderRegistry(
		[]RegisteredProvider{{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}}},
		nil,
		logging.NewNop(),
		WithRegistryClock(now),
		WithHealthTTL(5*time.Minute),
	)

	ctx := context.Background()
	registry.RecordOutcome(ctx, "alpha", false)

	if registry.Usable(ctx, "alpha") {
		t.Fatalf("provider usable right after failure: got=true want=false")
	}

	clock = clock.Add(4 * time.Minute)
	if registry.Usable(ctx, "alpha") {
		t.Fatalf("provider usable before TTL expiry: got=true want=false")
	}

	clock = clock.Add(2 * time.Minute)
	if !registry.Usable(ctx, "alpha") {
		t.Fatalf("provider usable after TTL expiry: got=false want=true")
	}
}

func TestProviderRegistry_QuotaExhaustedSkipsProvider(t *testing.T) {
	t.Parallel()

	quota := &stubQuotaTracker{exhausted: map[string]bool{"alpha": true}}
	registry := NewProviderRegistry(
		[]RegisteredProvider{{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}}},
		quota,
		logging.NewNop(),
	)

	if registry.Usable(context.Background(), "alpha") {
		t.Fatalf("quota-exhausted provider usable: got=true want=false")
	}
}

func TestProviderRegistry_QuotaTrackerFailureAssumesAvailable(t *testing.T) {
	t.Parallel()

	quota := &stubQuotaTracker{checkErr: errors.New("tracker down")}
	registry := NewProviderRegistry(
		[]RegisteredProvider{{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}}},
		quota,
		logging.NewNop(),
	)

	if !registry.Usable(context.Background(), "alpha") {
		t.Fatalf("provider with failing quota tracker: got=false want=true")
	}
}

func TestProviderRegistry_RecordOutcomeReportsCall(t *testing.T) {
	t.Parallel()

	quota := &stubQuotaTracker{}
	registry := NewProviderRegistry(
		[]RegisteredProvider{{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}}},
		quota,
		logging.NewNop(),
	)

	ctx := context.Background()
	registry.RecordOutcome(ctx, "alpha", true)
	registry.RecordOutcome(ctx, "alpha", false)

	quota.mu.Lock()
	recorded := quota.recorded["alpha"]
	quota.mu.Unlock()
	if recorded != 2 {
		t.Fatalf("recorded calls: got=%d want=%d", recorded, 2)
	}
}

func TestProviderRegistry_SnapshotCoversAllProviders(t *testing.T) {
	t.Parallel()

	registry := NewProviderRegistry(
		[]RegisteredProvider{
			{Credential: activeCredential("alpha", 1), Fetcher: &stubFixtureProvider{name: "alpha"}},
			{Credential: activeCredential("bravo", 2), Fetcher: &stubFixtureProvider{name: "bravo"}},
		},
		nil,
		logging.NewNop(),
	)

	registry.RecordOutcome(context.Background(), "bravo", false)

	snapshot := registry.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("snapshot size: got=%d want=%d", len(snapshot), 2)
	}
	if !snapshot[0].IsWorking {
		t.Fatalf("never-attempted provider health: got=not-working want=working")
	}
	if snapshot[1].IsWorking {
		t.Fatalf("failed provider health: got=working want=not-working")
	}
}
