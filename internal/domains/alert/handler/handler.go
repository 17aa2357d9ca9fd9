package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopdesk-backend/internal/domains/alert/model"
	"shopdesk-backend/internal/domains/alert/service"
	invModel "shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/shared/middleware"
	"shopdesk-backend/internal/shared/response"
)

type AlertHandler struct {
	alertService service.ServiceInterface
}

func NewHandler(alertService service.ServiceInterface) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GetAlerts handles GET /alerts
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	userID := middleware.UserID(c)

	list, err := h.alertService.GetAlerts(c.Request.Context(), tenantID, userID)
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "Inventory is currently unavailable", err.Error())
		return
	}

	if list.Stale {
		meta := &response.Meta{
			Stale:  true,
			Notice: "Inventory refresh failed; showing the last known stock levels",
		}
		response.SuccessWithMeta(c, http.StatusOK, "Alerts retrieved successfully", gin.H{"alerts": list.Alerts}, meta)
		return
	}

	response.Success(c, http.StatusOK, "Alerts retrieved successfully", gin.H{"alerts": list.Alerts})
}

// DismissAlert handles POST /alerts/:id/dismiss
func (h *AlertHandler) DismissAlert(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	userID := middleware.UserID(c)

	alertID := c.Param("id")
	if err := h.alertService.DismissAlert(c.Request.Context(), tenantID, userID, alertID); err != nil {
		if errors.Is(err, model.ErrInvalidAlertID) {
			response.Error(c, http.StatusBadRequest, "Invalid alert id", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to dismiss alert", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Alert dismissed", nil)
}

// RestoreDismissed handles POST /alerts/restore
func (h *AlertHandler) RestoreDismissed(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	userID := middleware.UserID(c)

	if err := h.alertService.RestoreDismissed(c.Request.Context(), tenantID, userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to restore dismissed alerts", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Dismissed alerts restored", nil)
}

// GetInsights handles GET /alerts/insights
func (h *AlertHandler) GetInsights(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	userID := middleware.UserID(c)

	insights, err := h.alertService.GetInsights(c.Request.Context(), tenantID, userID)
	if err != nil {
		if errors.Is(err, invModel.ErrSnapshotUnavailable) {
			response.Error(c, http.StatusServiceUnavailable, "Inventory is currently unavailable", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to compute insights", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Insights retrieved successfully", insights)
}
