package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopdesk-backend/internal/domains/analytics/service"
	"shopdesk-backend/internal/shared/middleware"
	"shopdesk-backend/internal/shared/response"
)

type AnalyticsHandler struct {
	analyticsService service.ServiceInterface
}

func NewHandler(analyticsService service.ServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetAnalytics handles GET /analytics
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	snapshot, err := h.analyticsService.GetAnalytics(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "Inventory is currently unavailable", err.Error())
		return
	}

	if snapshot.Stale {
		meta := &response.Meta{
			Stale:  true,
			Notice: "Inventory refresh failed; analytics reflect the last known stock levels",
		}
		response.SuccessWithMeta(c, http.StatusOK, "Analytics retrieved successfully", snapshot, meta)
		return
	}

	response.Success(c, http.StatusOK, "Analytics retrieved successfully", snapshot)
}
