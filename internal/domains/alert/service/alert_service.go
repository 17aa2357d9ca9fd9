package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopdesk-backend/internal/domains/alert/model"
	"shopdesk-backend/internal/domains/alert/repository"
	invModel "shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/pkg/logger"
)

// SnapshotSource is the slice of the inventory service the alert engine
// needs. Kept narrow so tests can stub it with a map.
type SnapshotSource interface {
	GetSnapshot(ctx context.Context, tenantID uuid.UUID) (*invModel.Snapshot, error)
	UsageRates(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]float64, error)
}

// RuleCounter reports how many auto-reorder rules are enabled. Implemented
// by the reorder repository; declared here to avoid a domain import cycle.
type RuleCounter interface {
	CountEnabled(ctx context.Context, tenantID uuid.UUID) (int, error)
}

type AlertService struct {
	snapshots SnapshotSource
	dismissed repository.RepositoryInterface
	rules     RuleCounter
}

// NewService creates a new alert service
func NewService(snapshots SnapshotSource, dismissed repository.RepositoryInterface, rules RuleCounter) ServiceInterface {
	return &AlertService{
		snapshots: snapshots,
		dismissed: dismissed,
		rules:     rules,
	}
}

// GetAlerts implements Service.GetAlerts
func (s *AlertService) GetAlerts(ctx context.Context, tenantID, userID uuid.UUID) (*AlertList, error) {
	snapshot, err := s.snapshots.GetSnapshot(ctx, tenantID)
	if err != nil && snapshot == nil {
		return nil, err
	}

	usage, usageErr := s.snapshots.UsageRates(ctx, tenantID)
	if usageErr != nil {
		// No usage history is a degraded estimate, not a failed read.
		logger.Warn("usage rates unavailable, omitting stockout estimates", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"error":     usageErr.Error(),
		})
		usage = nil
	}

	alerts := ComputeAlerts(snapshot.Items, usage, time.Now())

	dismissedIDs, dismissErr := s.dismissed.ListDismissed(ctx, tenantID, userID)
	if dismissErr != nil {
		// Serve unfiltered rather than blank when the dismissal read fails.
		logger.Warn("dismissal list unavailable, serving unfiltered alerts", map[string]interface{}{
			"tenant_id": tenantID.String(),
			"user_id":   userID.String(),
			"error":     dismissErr.Error(),
		})
	} else if len(dismissedIDs) > 0 {
		hidden := make(map[string]struct{}, len(dismissedIDs))
		for _, id := range dismissedIDs {
			hidden[id] = struct{}{}
		}
		filtered := alerts[:0]
		for _, a := range alerts {
			if _, ok := hidden[a.ID]; !ok {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}

	return &AlertList{Alerts: alerts, Stale: snapshot.Stale}, nil
}

// DismissAlert implements Service.DismissAlert
func (s *AlertService) DismissAlert(ctx context.Context, tenantID, userID uuid.UUID, alertID string) error {
	if !strings.HasPrefix(alertID, "alert-") {
		return fmt.Errorf("%w: %q", model.ErrInvalidAlertID, alertID)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(alertID, "alert-")); err != nil {
		return fmt.Errorf("%w: %q", model.ErrInvalidAlertID, alertID)
	}

	record := &model.DismissedAlert{
		TenantID:    tenantID,
		UserID:      userID,
		AlertID:     alertID,
		DismissedAt: time.Now(),
	}
	return s.dismissed.Dismiss(ctx, record)
}

// RestoreDismissed implements Service.RestoreDismissed
func (s *AlertService) RestoreDismissed(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.dismissed.ClearDismissed(ctx, tenantID, userID)
}

// GetInsights implements Service.GetInsights
func (s *AlertService) GetInsights(ctx context.Context, tenantID, userID uuid.UUID) (*model.Insights, error) {
	list, err := s.GetAlerts(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshots.GetSnapshot(ctx, tenantID)
	if err != nil && snapshot == nil {
		return nil, err
	}

	activeRules, err := s.rules.CountEnabled(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count enabled rules: %w", err)
	}

	prices := make(map[uuid.UUID]decimal.Decimal, len(snapshot.Items))
	for _, item := range snapshot.Items {
		prices[item.ID] = item.UnitPrice
	}

	insights := &model.Insights{
		TotalAlerts:           len(list.Alerts),
		ActiveRules:           activeRules,
		EstimatedReorderValue: decimal.Zero,
	}

	for _, a := range list.Alerts {
		if a.Priority == model.PriorityHigh {
			insights.HighPriorityAlerts++
		}
		if price, ok := prices[a.ItemID]; ok {
			lineValue := price.Mul(decimal.NewFromInt(int64(a.SuggestedQuantity)))
			insights.EstimatedReorderValue = insights.EstimatedReorderValue.Add(lineValue)
		}
	}

	if total := len(snapshot.Items); total > 0 {
		insights.AutomationCoverage = float64(activeRules) / float64(total) * 100
	}

	return insights, nil
}
