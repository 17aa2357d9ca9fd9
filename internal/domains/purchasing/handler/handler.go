package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/purchasing/model"
	"shopdesk-backend/internal/domains/purchasing/service"
	"shopdesk-backend/internal/shared/middleware"
	"shopdesk-backend/internal/shared/response"
)

type OrderHandler struct {
	orderService service.ServiceInterface
}

func NewHandler(orderService service.ServiceInterface) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.orderService.ListOrders(c.Request.Context(), tenantID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list purchase orders", err.Error())
		return
	}

	meta := &response.Meta{Page: result.Page, Limit: result.Limit, Total: result.Total}
	response.SuccessWithMeta(c, http.StatusOK, "Purchase orders retrieved successfully", gin.H{"orders": result.Orders}, meta)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid order id", err.Error())
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Purchase order not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get purchase order", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Purchase order retrieved successfully", order)
}

// SubmitOrder handles POST /orders/:id/submit
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid order id", err.Error())
		return
	}

	order, err := h.orderService.SubmitOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Purchase order not found", err.Error())
		case errors.Is(err, model.ErrInvalidStatusTransition):
			response.Error(c, http.StatusConflict, "Purchase order cannot be submitted", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to submit purchase order", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Purchase order submitted successfully", order)
}
