package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/reorder/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a postgres-backed rule repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const ruleColumns = `id, tenant_id, item_id, enabled, reorder_point, reorder_quantity, lead_time_days, created_at, updated_at`

func scanRule(row pgx.Row) (*model.ReorderRule, error) {
	var rule model.ReorderRule
	err := row.Scan(
		&rule.ID, &rule.TenantID, &rule.ItemID, &rule.Enabled,
		&rule.ReorderPoint, &rule.ReorderQuantity, &rule.LeadTimeDays,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *postgresRepository) listRules(ctx context.Context, tenantID uuid.UUID, enabledOnly bool) ([]model.ReorderRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM reorder_rules WHERE tenant_id = $1`, ruleColumns)
	if enabledOnly {
		query += ` AND enabled = TRUE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reorder rules: %w", err)
	}
	defer rows.Close()

	var rules []model.ReorderRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reorder rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reorder rules: %w", err)
	}
	return rules, nil
}

func (r *postgresRepository) ListRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error) {
	return r.listRules(ctx, tenantID, false)
}

func (r *postgresRepository) ListEnabledRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error) {
	return r.listRules(ctx, tenantID, true)
}

func (r *postgresRepository) GetRuleByItem(ctx context.Context, tenantID, itemID uuid.UUID) (*model.ReorderRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM reorder_rules WHERE tenant_id = $1 AND item_id = $2`, ruleColumns)

	rule, err := scanRule(r.pool.QueryRow(ctx, query, tenantID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item=%s", model.ErrRuleNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get reorder rule: %w", err)
	}
	return rule, nil
}

// UpsertRule relies on the (tenant_id, item_id) unique constraint so a
// concurrent save for the same item replaces rather than duplicates.
func (r *postgresRepository) UpsertRule(ctx context.Context, rule *model.ReorderRule) error {
	query := `INSERT INTO reorder_rules
		(id, tenant_id, item_id, enabled, reorder_point, reorder_quantity, lead_time_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (tenant_id, item_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			reorder_point = EXCLUDED.reorder_point,
			reorder_quantity = EXCLUDED.reorder_quantity,
			lead_time_days = EXCLUDED.lead_time_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		rule.ID, rule.TenantID, rule.ItemID, rule.Enabled,
		rule.ReorderPoint, rule.ReorderQuantity, rule.LeadTimeDays,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert reorder rule: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteRule(ctx context.Context, tenantID, itemID uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM reorder_rules WHERE tenant_id = $1 AND item_id = $2`,
		tenantID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete reorder rule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: item=%s", model.ErrRuleNotFound, itemID)
	}
	return nil
}

func (r *postgresRepository) CountEnabled(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reorder_rules WHERE tenant_id = $1 AND enabled = TRUE`,
		tenantID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enabled rules: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) ListTenantsWithEnabledRules(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT tenant_id FROM reorder_rules WHERE enabled = TRUE`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants with enabled rules: %w", err)
	}
	defer rows.Close()

	var tenants []uuid.UUID
	for rows.Next() {
		var tenantID uuid.UUID
		if err := rows.Scan(&tenantID); err != nil {
			return nil, fmt.Errorf("failed to scan tenant id: %w", err)
		}
		tenants = append(tenants, tenantID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tenant ids: %w", err)
	}
	return tenants, nil
}
