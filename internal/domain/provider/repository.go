package provider

import "context"

// CredentialRepository exposes configured provider credentials ordered by
// priority.
type CredentialRepository interface {
	ListCredentials(ctx context.Context) ([]Credential, error)
}

// QuotaTracker reports and records cross-process call-count usage for one
// provider. Implementations may be a remote service or an in-process
// counter.
type QuotaTracker interface {
	IsQuotaExhausted(ctx context.Context, providerName string) (bool, error)
	RecordCall(ctx context.Context, providerName string, count int) error
}
