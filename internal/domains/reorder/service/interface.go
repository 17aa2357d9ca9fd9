package service

import (
	"context"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/reorder/model"
)

// RuleServiceInterface defines rule management operations
type RuleServiceInterface interface {
	// ListRules returns every rule for the tenant
	ListRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error)

	// RefetchRules drops the cached rule list and reads it fresh
	RefetchRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error)

	// SaveRule creates or replaces the rule for an item
	SaveRule(ctx context.Context, tenantID uuid.UUID, req *model.SaveRuleRequest) (*model.ReorderRule, error)

	// DeleteRule removes the rule for an item
	DeleteRule(ctx context.Context, tenantID, itemID uuid.UUID) error
}

// ExecutorInterface runs the auto-reorder engine
type ExecutorInterface interface {
	// Execute evaluates every enabled rule against current stock and
	// creates a purchase order for each item at or below its reorder
	// point. The idempotency key makes a replayed run a no-op.
	Execute(ctx context.Context, tenantID uuid.UUID, idempotencyKey string) (*model.ExecutionSummary, error)
}
