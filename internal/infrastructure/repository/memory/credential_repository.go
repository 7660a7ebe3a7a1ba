package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/match-relevance/internal/domain/provider"
)

type CredentialRepository struct {
	mu    sync.RWMutex
	items []provider.Credential
}

func NewCredentialRepository(credentials []provider.Credential) *CredentialRepository {
	items := make([]provider.Credential, len(credentials))
	copy(items, credentials)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority < items[j].Priority
	})

	return &CredentialRepository{items: items}
}

func (r *CredentialRepository) ListCredentials(_ context.Context) ([]provider.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]provider.Credential, len(r.items))
	copy(out, r.items)
	return out, nil
}
