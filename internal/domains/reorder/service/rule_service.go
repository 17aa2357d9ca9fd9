package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	invModel "shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/domains/reorder/model"
	"shopdesk-backend/internal/domains/reorder/repository"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/cache"
	"shopdesk-backend/pkg/logger"
)

const ruleCacheTTL = 5 * time.Minute

// ItemChecker verifies an item exists before a rule may reference it.
type ItemChecker interface {
	GetItemByID(ctx context.Context, tenantID, id uuid.UUID) (*invModel.InventoryItem, error)
}

type RuleService struct {
	repo            repository.RepositoryInterface
	items           ItemChecker
	cache           cache.Cache
	defaultLeadTime int
}

// NewRuleService creates a new rule service
func NewRuleService(repo repository.RepositoryInterface, items ItemChecker, cache cache.Cache, defaultLeadTimeDays int) RuleServiceInterface {
	return &RuleService{
		repo:            repo,
		items:           items,
		cache:           cache,
		defaultLeadTime: defaultLeadTimeDays,
	}
}

// ListRules implements RuleService.ListRules
func (s *RuleService) ListRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error) {
	key := shared.CacheKeyRules + tenantID.String()

	var cached []model.ReorderRule
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	rules, err := s.repo.ListRules(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, rules, ruleCacheTTL); err != nil {
		logger.Warn("failed to cache rule list", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     err.Error(),
		})
	}
	return rules, nil
}

// RefetchRules implements RuleService.RefetchRules
func (s *RuleService) RefetchRules(ctx context.Context, tenantID uuid.UUID) ([]model.ReorderRule, error) {
	s.invalidate(ctx, tenantID)
	return s.ListRules(ctx, tenantID)
}

// SaveRule implements RuleService.SaveRule
func (s *RuleService) SaveRule(ctx context.Context, tenantID uuid.UUID, req *model.SaveRuleRequest) (*model.ReorderRule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.items.GetItemByID(ctx, tenantID, req.ItemID); err != nil {
		if invModel.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: id=%s", model.ErrItemNotFound, req.ItemID)
		}
		return nil, err
	}

	leadTime := s.defaultLeadTime
	if req.LeadTimeDays != nil {
		leadTime = *req.LeadTimeDays
	}

	rule := &model.ReorderRule{
		ID:              uuid.New(),
		TenantID:        tenantID,
		ItemID:          req.ItemID,
		Enabled:         req.Enabled,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		LeadTimeDays:    leadTime,
	}

	if err := s.repo.UpsertRule(ctx, rule); err != nil {
		return nil, err
	}

	s.invalidate(ctx, tenantID)
	return rule, nil
}

// DeleteRule implements RuleService.DeleteRule
func (s *RuleService) DeleteRule(ctx context.Context, tenantID, itemID uuid.UUID) error {
	if err := s.repo.DeleteRule(ctx, tenantID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *RuleService) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := s.cache.Delete(ctx, shared.CacheKeyRules+tenantID.String()); err != nil {
		logger.Warn("failed to invalidate rule cache", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     err.Error(),
		})
	}
}
