package provider

import (
	"fmt"
	"time"
)

// Credential is one configured upstream data source. Priority 1 is tried
// first; IsActive false removes the provider from rotation without
// deleting its row.
type Credential struct {
	Name     string
	APIKey   string
	BaseURL  string
	Priority int
	IsActive bool
}

func (c Credential) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("provider api key is required")
	}
	if c.Priority <= 0 {
		return fmt.Errorf("provider priority must be greater than zero")
	}

	return nil
}

// Health is the process-local view of one provider, refreshed on a TTL or
// after a call attempt.
type Health struct {
	Name           string
	IsWorking      bool
	QuotaExhausted bool
	LastCheckedAt  time.Time
}

// Error wraps a single adapter failure with its provider name so the
// aggregator can log and continue to the next source.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s failed", e.Name)
	}
	return fmt.Sprintf("provider %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(name string, err error) *Error {
	return &Error{Name: name, Err: err}
}
