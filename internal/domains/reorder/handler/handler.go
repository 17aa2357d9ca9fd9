package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	invModel "shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/domains/reorder/model"
	"shopdesk-backend/internal/domains/reorder/service"
	"shopdesk-backend/internal/shared/middleware"
	"shopdesk-backend/internal/shared/response"
)

type ReorderHandler struct {
	ruleService service.RuleServiceInterface
	executor    service.ExecutorInterface
}

func NewHandler(ruleService service.RuleServiceInterface, executor service.ExecutorInterface) *ReorderHandler {
	return &ReorderHandler{ruleService: ruleService, executor: executor}
}

// ListRules handles GET /reorder/rules
func (h *ReorderHandler) ListRules(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	rules, err := h.ruleService.ListRules(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list reorder rules", err.Error())
		return
	}

	out := make([]model.RuleResponse, len(rules))
	for i := range rules {
		out[i] = rules[i].ToResponse()
	}
	response.Success(c, http.StatusOK, "Reorder rules retrieved successfully", gin.H{"rules": out})
}

// RefetchRules handles POST /reorder/rules/refetch
func (h *ReorderHandler) RefetchRules(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	rules, err := h.ruleService.RefetchRules(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to refetch reorder rules", err.Error())
		return
	}

	out := make([]model.RuleResponse, len(rules))
	for i := range rules {
		out[i] = rules[i].ToResponse()
	}
	response.Success(c, http.StatusOK, "Reorder rules refreshed", gin.H{"rules": out})
}

// SaveRule handles PUT /reorder/rules
func (h *ReorderHandler) SaveRule(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var req model.SaveRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	rule, err := h.ruleService.SaveRule(c.Request.Context(), tenantID, &req)
	if err != nil {
		switch {
		case isValidationFailure(err):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, model.ErrItemNotFound):
			response.Error(c, http.StatusNotFound, "Inventory item not found", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to save reorder rule", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Reorder rule saved", rule.ToResponse())
}

// DeleteRule handles DELETE /reorder/rules/:itemId
func (h *ReorderHandler) DeleteRule(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item id", err.Error())
		return
	}

	if err := h.ruleService.DeleteRule(c.Request.Context(), tenantID, itemID); err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Reorder rule not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete reorder rule", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Reorder rule deleted", nil)
}

// Execute handles POST /reorder/execute
func (h *ReorderHandler) Execute(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = uuid.NewString()
	}

	summary, err := h.executor.Execute(c.Request.Context(), tenantID, key)
	if err != nil {
		switch {
		case model.IsConflictError(err):
			response.Error(c, http.StatusConflict, "Execution already performed or in progress", err.Error())
		case errors.Is(err, invModel.ErrSnapshotUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "Inventory is currently unavailable", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Auto-reorder execution failed", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Auto-reorder execution completed", summary)
}

func isValidationFailure(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.ErrorObject
	return errors.As(err, &verr)
}
