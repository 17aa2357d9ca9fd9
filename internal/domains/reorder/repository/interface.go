package repository

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/reorder/model"
)

// RepositoryInterface defines rule persistence operations
type RepositoryInterface interface {
	// ListRules returns every rule for the tenant, enabled or not
	ListRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error)

	// ListEnabledRules returns only the rules eligible for execution
	ListEnabledRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error)

	// GetRuleByItem returns the rule for one item
	GetRuleByItem(ctx context.Context, tenantID, itemID uuid.UUID) (*model.ReorderRule, error)

	// UpsertRule inserts or replaces the tenant's rule for the item
	UpsertRule(ctx context.Context, rule *model.ReorderRule) error

	// DeleteRule removes the rule for the item
	DeleteRule(ctx context.Context, tenantID, itemID uuid.UUID) error

	// CountEnabled returns the number of enabled rules for the tenant
	CountEnabled(ctx context.Context, tenantID uuid.UUID) (int, error)

	// ListTenantsWithEnabledRules returns every tenant with at least one
	// enabled rule, for the periodic sweep
	ListTenantsWithEnabledRules(ctx context.Context) ([]uuid.UUID, error)
}
