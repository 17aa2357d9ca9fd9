package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/purchasing/model"
	"shopdesk-backend/internal/domains/purchasing/repository"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/cache"
	"shopdesk-backend/pkg/logger"
)

const orderCacheTTL = 5 * time.Minute

type OrderService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService creates a new purchasing service
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &OrderService{repo: repo, cache: cache}
}

// ListOrders implements Service.ListOrders
func (s *OrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, page, limit int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	key := fmt.Sprintf("%s%s:p%d:l%d", shared.CacheKeyOrders, tenantID, page, limit)

	var cached OrderPage
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	orders, total, err := s.repo.ListOrders(ctx, tenantID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	result := &OrderPage{Orders: orders, Total: total, Page: page, Limit: limit}

	if err := s.cache.Set(ctx, key, result, orderCacheTTL); err != nil {
		logger.Warn("failed to cache order page", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     err.Error(),
		})
	}
	return result, nil
}

// GetOrder implements Service.GetOrder
func (s *OrderService) GetOrder(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error) {
	return s.repo.GetOrderByID(ctx, tenantID, id)
}

// SubmitOrder implements Service.SubmitOrder
func (s *OrderService) SubmitOrder(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error) {
	order, err := s.repo.GetOrderByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.StatusDraft {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidStatusTransition, order.Status, model.StatusSubmitted)
	}

	if err := s.repo.UpdateStatus(ctx, tenantID, id, model.StatusSubmitted); err != nil {
		return nil, err
	}
	order.Status = model.StatusSubmitted

	if err := s.cache.DeletePattern(ctx, shared.CacheKeyOrders+tenantID.String()+"*"); err != nil {
		logger.Warn("failed to invalidate order cache", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     err.Error(),
		})
	}
	return order, nil
}
