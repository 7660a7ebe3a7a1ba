package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-relevance/internal/domain/provider"
	qb "github.com/riskibarqy/match-relevance/internal/platform/querybuilder"
)

type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// ListCredentials returns every non-deleted provider credential ordered by
// ascending priority. Inactive rows are included so operators can see the
// full configuration; the registry filters them.
func (r *CredentialRepository) ListCredentials(ctx context.Context) ([]provider.Credential, error) {
	query, args, err := qb.Select("*").From("provider_credentials").
		Where(
			qb.IsNull("deleted_at"),
		).
		OrderBy("priority", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select provider credentials query: %w", err)
	}

	var rows []credentialTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select provider credentials: %w", err)
	}

	out := make([]provider.Credential, 0, len(rows))
	for _, row := range rows {
		out = append(out, provider.Credential{
			Name:     row.Name,
			APIKey:   row.APIKey,
			BaseURL:  row.BaseURL,
			Priority: row.Priority,
			IsActive: row.IsActive,
		})
	}

	return out, nil
}
