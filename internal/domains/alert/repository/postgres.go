package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopdesk-backend/internal/domains/alert/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a postgres-backed dismissal repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// Dismiss is idempotent: dismissing an already-dismissed alert is a no-op.
func (r *postgresRepository) Dismiss(ctx context.Context, record *model.DismissedAlert) error {
	query := `INSERT INTO dismissed_alerts (tenant_id, user_id, alert_id, dismissed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, user_id, alert_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		record.TenantID, record.UserID, record.AlertID, record.DismissedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to dismiss alert: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListDismissed(ctx context.Context, tenantID, userID uuid.UUID) ([]string, error) {
	query := `SELECT alert_id FROM dismissed_alerts WHERE tenant_id = $1 AND user_id = $2`

	rows, err := r.pool.Query(ctx, query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dismissed alerts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dismissed alert: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dismissed alerts: %w", err)
	}
	return ids, nil
}

func (r *postgresRepository) ClearDismissed(ctx context.Context, tenantID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM dismissed_alerts WHERE tenant_id = $1 AND user_id = $2`,
		tenantID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear dismissed alerts: %w", err)
	}
	return nil
}
